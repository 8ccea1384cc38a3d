package service

import (
	"auth-service/internal/model"
	"errors"
)

// Ошибки, видимые клиенту. Сообщения намеренно не раскрывают причину отказа,
// подробности пишутся только в лог.
var (
	ErrInvalidCredentials           = errors.New("invalid credentials")
	ErrAccountNotVerified           = errors.New("account not verified")
	ErrTwoFactorRequired            = errors.New("two-factor code required")
	ErrInvalidTwoFactorCode         = errors.New("invalid two-factor code")
	ErrInvalidOrExpiredToken        = errors.New("invalid or expired token")
	ErrInvalidOrExpiredRefreshToken = errors.New("invalid or expired refresh token")
	ErrEmailAlreadyRegistered       = errors.New("email already registered")
	ErrWeakPassword                 = errors.New("weak password")
	ErrInvalidInput                 = errors.New("invalid input")
)

// Нарушение целостности данных, отдается как внутренняя ошибка сервера
var ErrTotpSecretMissing = model.ErrTotpSecretMissing

var (
	ErrTwoFactorAlreadyEnabled = model.ErrTwoFactorAlreadyEnabled
	ErrTwoFactorNotPending     = model.ErrTwoFactorNotPending
	ErrTwoFactorNotEnabled     = model.ErrTwoFactorNotEnabled
)
