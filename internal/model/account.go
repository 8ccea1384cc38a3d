package model

import "time"

// Account : учетная запись пользователя.
// Меняется только через переходы сервиса аутентификации, напрямую вызывающим не изменяется.
type Account struct {
	UUID         string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Active       bool
	Verified     bool
	TwoFactor    TwoFactor
	CreatedAt    time.Time
}

// CanAuthenticate : учетная запись существует и не деактивирована
func (a *Account) CanAuthenticate() bool {
	return a != nil && a.Active
}
