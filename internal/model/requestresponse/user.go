package requestresponse

import (
	"auth-service/internal/model"
	"time"
)

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"invalid credentials"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type AccountData struct {
	UUID             string    `json:"uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	Email            string    `json:"email" example:"user@example.com"`
	FirstName        string    `json:"first_name" example:"Иван"`
	LastName         string    `json:"last_name" example:"Иванов"`
	Phone            string    `json:"phone" example:"+79990000000"`
	Verified         bool      `json:"verified" example:"true"`
	TwoFactorEnabled bool      `json:"two_factor_enabled" example:"false"`
	CreatedAt        time.Time `json:"created_at"`
}

// AccountResponse : данные текущего пользователя
type AccountResponse struct {
	Response AccountData `json:"response"`
}

func NewAccountResponse(account *model.Account) AccountResponse {
	return AccountResponse{
		Response: AccountData{
			UUID:             account.UUID,
			Email:            account.Email,
			FirstName:        account.FirstName,
			LastName:         account.LastName,
			Phone:            account.Phone,
			Verified:         account.Verified,
			TwoFactorEnabled: account.TwoFactor.IsEnabled(),
			CreatedAt:        account.CreatedAt,
		},
	}
}

// UpdateProfileRequest : тело запроса на обновление профиля
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" example:"Иван"`
	LastName  string `json:"last_name" example:"Петров"`
	Phone     string `json:"phone" example:"+79990000000"`
}

// ChangePasswordRequest : тело запроса смены пароля
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"P@ssw0rd123"`
	NewPassword     string `json:"new_password" example:"N3wP@ssw0rd"`
}

// DeactivateRequest : подтверждение паролем
type DeactivateRequest struct {
	Password string `json:"password" example:"P@ssw0rd123"`
}

// UpdatedResponse : успешный ответ
type UpdatedResponse struct {
	Response struct {
		Updated bool `json:"updated" example:"true"`
	} `json:"response"`
}

func NewUpdatedResponse() UpdatedResponse {
	resp := UpdatedResponse{}
	resp.Response.Updated = true
	return resp
}

// TwoFactorCodeRequest : код из приложения-аутентификатора
type TwoFactorCodeRequest struct {
	Code string `json:"code" example:"123456"`
}

// TwoFactorSetupResponse : секрет и otpauth ссылка для QR-кода
type TwoFactorSetupResponse struct {
	Response model.TwoFactorSetup `json:"response"`
}
