package handler

import (
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"net/http"
)

type TwoFactorHandler struct {
	ports.AuthenticationService
}

func NewTwoFactorHandler(authenticationService ports.AuthenticationService) *TwoFactorHandler {
	return &TwoFactorHandler{authenticationService}
}

// Setup godoc
// @Summary Начало подключения 2FA
// @Description Генерирует новый TOTP секрет и otpauth ссылку. 2FA включается только после подтверждения кодом.
// @Tags TwoFactor
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} requestresponse.TwoFactorSetupResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "2FA уже включена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/me/2fa/setup [post]
func (h *TwoFactorHandler) Setup(w http.ResponseWriter, r *http.Request) {
	current, ok := currentAccount(w, r)
	if !ok {
		return
	}

	setup, err := h.AuthenticationService.SetupTwoFactor(r.Context(), current.UUID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.TwoFactorSetupResponse{Response: *setup})
}

// Enable godoc
// @Summary Включение 2FA
// @Description Подтверждает подключение кодом из приложения-аутентификатора
// @Tags TwoFactor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.TwoFactorCodeRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UpdatedResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный код"
// @Failure 409 {object} requestresponse.ErrorResponse "Подключение 2FA не начато"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/me/2fa/enable [post]
func (h *TwoFactorHandler) Enable(w http.ResponseWriter, r *http.Request) {
	current, ok := currentAccount(w, r)
	if !ok {
		return
	}

	var req requestresponse.TwoFactorCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.EnableTwoFactor(r.Context(), current.UUID, req.Code); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.NewUpdatedResponse())
}

// Disable godoc
// @Summary Отключение 2FA
// @Description Отключает 2FA по текущему коду, секрет удаляется
// @Tags TwoFactor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.TwoFactorCodeRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UpdatedResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный код"
// @Failure 409 {object} requestresponse.ErrorResponse "2FA не включена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/me/2fa/disable [post]
func (h *TwoFactorHandler) Disable(w http.ResponseWriter, r *http.Request) {
	current, ok := currentAccount(w, r)
	if !ok {
		return
	}

	var req requestresponse.TwoFactorCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.DisableTwoFactor(r.Context(), current.UUID, req.Code); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.NewUpdatedResponse())
}
