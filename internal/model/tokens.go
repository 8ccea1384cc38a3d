package model

import "time"

const TokenTypeBearer = "bearer"

// RefreshToken : серверная запись о refresh-токене.
// В БД хранится только sha256 от значения, само значение остаётся у клиента.
type RefreshToken struct {
	UUID        string     `db:"uuid"`
	AccountUUID string     `db:"account_uuid"`
	TokenHash   string     `db:"token_hash"`
	ExpireAt    time.Time  `db:"expire_at"`
	Revoked     bool       `db:"revoked"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	RevokedAt   *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

// IsActive : не отозван и не истёк
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t != nil && !t.Revoked && now.Before(t.ExpireAt)
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// Refresh токен (для получения новой пары)
	// example: vcSi0369y1I62wOpxZFpgZ...
	RefreshToken string `json:"refresh_token"`

	// Тип токена, всегда "bearer"
	TokenType string `json:"token_type"`
}

// TwoFactorSetup : данные для подключения приложения-аутентификатора
type TwoFactorSetup struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}
