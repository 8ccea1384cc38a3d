package handler

import (
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"net/http"
	"strings"
)

// одинаковый ответ для существующих и несуществующих адресов
const acceptedMessage = "если учетная запись существует, письмо отправлено"

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создает учетную запись и отправляет письмо для подтверждения email. Если политика разрешает, сразу возвращает пару токенов.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} model.TokensPair "Учетная запись создана, токены выданы"
// @Success 202 {object} requestresponse.MessageResponse "Учетная запись создана, требуется подтверждение email"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный email или слабый пароль"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже зарегистрирован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "email и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.Register(r.Context(), model.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if tokens == nil {
		util.WriteJSON(w, http.StatusAccepted, requestresponse.NewMessageResponse("подтвердите email"))
		return
	}

	util.WriteJSON(w, http.StatusCreated, tokens)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по email и паролю. При включенной 2FA требуется totp_code.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} model.TokensPair "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверные учетные данные или код 2FA"
// @Failure 403 {object} requestresponse.ErrorResponse "Email не подтвержден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "email и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.Login(r.Context(), model.Credentials{
		Email:    req.Email,
		Password: req.Password,
		TOTPCode: req.TOTPCode,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, tokens)
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Обменивает refresh токен на новую пару токенов. Старый refresh токен после этого недействителен.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} model.TokensPair "Новые access и refresh токены"
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Недействительный refresh токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RefreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.RefreshToken == "" {
		sendErrorResponse(w, http.StatusBadRequest, "refresh_token обязателен")
		return
	}

	tokens, err := h.AuthenticationService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, tokens)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает refresh токен. Повторный вызов с тем же токеном тоже успешен.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 204 "Токен отозван"
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RefreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifyEmail godoc
// @Summary Подтверждение email
// @Description Подтверждает email по токену из письма. Повторное подтверждение не ошибка.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.TokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Недействительный или истекший токен"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/verify-email [post]
func (h *AuthenticationHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.TokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.VerifyEmail(r.Context(), req.Token); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.NewMessageResponse("email подтвержден"))
}

// ResendVerification godoc
// @Summary Повторная отправка письма подтверждения
// @Description Ответ не зависит от того, существует ли учетная запись.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.EmailRequest true "Тело запроса"
// @Success 202 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/auth/resend-verification [post]
func (h *AuthenticationHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.EmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.ResendVerification(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusAccepted, requestresponse.NewMessageResponse(acceptedMessage))
}

// ForgotPassword godoc
// @Summary Запрос на сброс пароля
// @Description Отправляет ссылку для сброса пароля. Ответ не зависит от того, существует ли учетная запись.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.EmailRequest true "Тело запроса"
// @Success 202 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/auth/forgot-password [post]
func (h *AuthenticationHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.EmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusAccepted, requestresponse.NewMessageResponse(acceptedMessage))
}

// ResetPassword godoc
// @Summary Сброс пароля
// @Description Устанавливает новый пароль по токену из письма.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ResetPasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UpdatedResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Недействительный токен или слабый пароль"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/reset-password [post]
func (h *AuthenticationHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Token == "" || req.NewPassword == "" {
		sendErrorResponse(w, http.StatusBadRequest, "token и new_password обязательны")
		return
	}

	if err := h.AuthenticationService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.NewUpdatedResponse())
}
