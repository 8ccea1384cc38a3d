package handler

import (
	"auth-service/internal/model"
	"auth-service/internal/service"
	"context"
	"errors"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

type contextKey string

const accountContextKey contextKey = "account"

// Authenticator : проверка access-токена, реализуется сервисом аутентификации
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.Account, error)
}

// BearerMiddleware : 401 только для отсутствующего или отклоненного токена,
// сбой хранилища отдается как 500
func BearerMiddleware(authenticator Authenticator) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				sendUnauthorized(writer, "unauthorized")
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			account, err := authenticator.Authenticate(request.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrInvalidOrExpiredToken) {
					sendUnauthorized(writer, service.ErrInvalidOrExpiredToken.Error())
					return
				}
				zap.L().Error("ошибка проверки access токена", zap.Error(err))
				sendErrorResponse(writer, http.StatusInternalServerError, "internal server error")
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), accountContextKey, account))
			next.ServeHTTP(writer, req)
		})
	}
}

func sendUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	sendErrorResponse(w, http.StatusUnauthorized, message)
}

func accountFromContext(ctx context.Context) (*model.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*model.Account)
	return account, ok && account != nil
}
