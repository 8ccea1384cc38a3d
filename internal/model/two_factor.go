package model

import "errors"

type TwoFactorStatus string

const (
	TwoFactorDisabled TwoFactorStatus = "disabled"
	TwoFactorPending  TwoFactorStatus = "pending"
	TwoFactorEnabled  TwoFactorStatus = "enabled"
)

var (
	ErrTotpSecretMissing       = errors.New("two-factor is enabled but totp secret is missing")
	ErrTwoFactorAlreadyEnabled = errors.New("two-factor already enabled")
	ErrTwoFactorNotPending     = errors.New("two-factor setup not started")
	ErrTwoFactorNotEnabled     = errors.New("two-factor not enabled")
)

// TwoFactor : состояние второго фактора учетной записи.
// Поля закрыты, поэтому состояние "включено без секрета" собрать нельзя:
// Disabled | Pending{secret} | Enabled{secret}.
// Нулевое значение соответствует Disabled.
type TwoFactor struct {
	status TwoFactorStatus
	secret string
}

func DisabledTwoFactor() TwoFactor {
	return TwoFactor{status: TwoFactorDisabled}
}

func PendingTwoFactor(secret string) TwoFactor {
	if secret == "" {
		return DisabledTwoFactor()
	}
	return TwoFactor{status: TwoFactorPending, secret: secret}
}

// TwoFactorFromColumns : восстанавливает состояние из колонок хранилища.
// Флаг без секрета - нарушение целостности данных, возвращается ErrTotpSecretMissing.
func TwoFactorFromColumns(enabled bool, secret *string) (TwoFactor, error) {
	hasSecret := secret != nil && *secret != ""
	switch {
	case enabled && !hasSecret:
		return TwoFactor{}, ErrTotpSecretMissing
	case enabled:
		return TwoFactor{status: TwoFactorEnabled, secret: *secret}, nil
	case hasSecret:
		return TwoFactor{status: TwoFactorPending, secret: *secret}, nil
	default:
		return DisabledTwoFactor(), nil
	}
}

func (t TwoFactor) Status() TwoFactorStatus {
	if t.status == "" {
		return TwoFactorDisabled
	}
	return t.status
}

func (t TwoFactor) IsEnabled() bool {
	return t.Status() == TwoFactorEnabled
}

// Secret : секрет есть только в состояниях Pending и Enabled
func (t TwoFactor) Secret() (string, bool) {
	if t.Status() == TwoFactorDisabled {
		return "", false
	}
	return t.secret, true
}

// Columns : представление для хранилища (two_factor_enabled, totp_secret)
func (t TwoFactor) Columns() (bool, *string) {
	secret, ok := t.Secret()
	if !ok {
		return false, nil
	}
	return t.IsEnabled(), &secret
}

// Begin : disabled/pending -> pending с новым секретом
func (t TwoFactor) Begin(secret string) (TwoFactor, error) {
	if t.IsEnabled() {
		return t, ErrTwoFactorAlreadyEnabled
	}
	return PendingTwoFactor(secret), nil
}

// Enable : pending -> enabled, код проверяется вызывающим
func (t TwoFactor) Enable() (TwoFactor, error) {
	if t.Status() != TwoFactorPending {
		return t, ErrTwoFactorNotPending
	}
	return TwoFactor{status: TwoFactorEnabled, secret: t.secret}, nil
}

// Disable : enabled -> disabled, секрет и флаг сбрасываются вместе
func (t TwoFactor) Disable() (TwoFactor, error) {
	if !t.IsEnabled() {
		return t, ErrTwoFactorNotEnabled
	}
	return DisabledTwoFactor(), nil
}
