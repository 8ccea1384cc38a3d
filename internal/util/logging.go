package util

import (
	"encoding/json"
	"fmt"
	"go.uber.org/zap"
	"net/http"
)

// LogError : пишет ошибку в лог и возвращает её обернутой с тем же сообщением
func LogError(message string, err error) error {
	zap.L().Error(message, zap.Error(err))
	return fmt.Errorf("%s: %w", message, err)
}

// WriteJSON : ответ с телом в формате json
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("ошибка записи ответа", zap.Error(err))
	}
}
