package handler

import (
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"net/http"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// GetMe godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает данные учетной записи владельца access токена
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} requestresponse.AccountResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	current, ok := currentAccount(w, r)
	if !ok {
		return
	}

	account, err := h.UserService.GetProfile(r.Context(), current.UUID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.NewAccountResponse(account))
}

// UpdateMe godoc
// @Summary Обновление профиля
// @Description Меняет имя, фамилию и телефон. Email не меняется.
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.UpdateProfileRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AccountResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/me [put]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	current, ok := currentAccount(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	account, err := h.UserService.UpdateProfile(r.Context(), current.UUID, model.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.NewAccountResponse(account))
}

// ChangePassword godoc
// @Summary Смена пароля
// @Description Меняет пароль, требуется текущий пароль
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.ChangePasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UpdatedResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/me/password [put]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := currentAccount(w, r)
	if !ok {
		return
	}

	var req requestresponse.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		sendErrorResponse(w, http.StatusBadRequest, "current_password и new_password обязательны")
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), current.UUID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.NewUpdatedResponse())
}

// DeleteMe godoc
// @Summary Деактивация учетной записи
// @Description Мягкое удаление: учетная запись помечается неактивной
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.DeactivateRequest true "Тело запроса"
// @Success 204 "Учетная запись деактивирована"
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/me [delete]
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	current, ok := currentAccount(w, r)
	if !ok {
		return
	}

	var req requestresponse.DeactivateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.UserService.Deactivate(r.Context(), current.UUID, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// currentAccount : учетная запись, положенная в контекст BearerMiddleware
func currentAccount(w http.ResponseWriter, r *http.Request) (*model.Account, bool) {
	account, ok := accountFromContext(r.Context())
	if !ok {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return account, true
}
