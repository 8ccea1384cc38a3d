package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Email     string `json:"email" example:"user@example.com"`
	Password  string `json:"password" example:"P@ssw0rd123"`
	FirstName string `json:"first_name" example:"Иван"`
	LastName  string `json:"last_name" example:"Иванов"`
	Phone     string `json:"phone" example:"+79990000000"`
}

// LoginRequest : тело запроса на аутентификацию, totp_code нужен при включенной 2FA
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
	TOTPCode string `json:"totp_code,omitempty" example:"123456"`
}

// RefreshTokenRequest : запрос на обновление пары токенов или выход
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"vcSi0369y1I62wOpxZFpgZ..."`
}

// TokenRequest : одноразовый токен из письма
type TokenRequest struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// EmailRequest : запрос письма (сброс пароля, повторное подтверждение)
type EmailRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// ResetPasswordRequest : новый пароль по токену из письма
type ResetPasswordRequest struct {
	Token       string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	NewPassword string `json:"new_password" example:"N3wP@ssw0rd"`
}

// MessageResponse : ответ без данных
type MessageResponse struct {
	Response struct {
		Message string `json:"message" example:"ok"`
	} `json:"response"`
}

func NewMessageResponse(message string) MessageResponse {
	resp := MessageResponse{}
	resp.Response.Message = message
	return resp
}
