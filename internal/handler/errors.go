package handler

import (
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/service"
	"encoding/json"
	"errors"
	"go.uber.org/zap"
	"net/http"
)

// writeServiceError : ошибки сервиса в HTTP статусы, неизвестные ошибки скрываются за 500
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrWeakPassword):
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		sendErrorResponse(w, http.StatusBadRequest, service.ErrInvalidOrExpiredToken.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		sendErrorResponse(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrTwoFactorRequired):
		sendErrorResponse(w, http.StatusUnauthorized, service.ErrTwoFactorRequired.Error())
	case errors.Is(err, service.ErrInvalidTwoFactorCode):
		sendErrorResponse(w, http.StatusUnauthorized, service.ErrInvalidTwoFactorCode.Error())
	case errors.Is(err, service.ErrInvalidOrExpiredRefreshToken):
		sendErrorResponse(w, http.StatusUnauthorized, service.ErrInvalidOrExpiredRefreshToken.Error())
	case errors.Is(err, service.ErrAccountNotVerified):
		sendErrorResponse(w, http.StatusForbidden, service.ErrAccountNotVerified.Error())
	case errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, service.ErrTwoFactorAlreadyEnabled),
		errors.Is(err, service.ErrTwoFactorNotPending),
		errors.Is(err, service.ErrTwoFactorNotEnabled):
		sendErrorResponse(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("внутренняя ошибка", zap.Error(err))
		sendErrorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}
