package ports

import (
	"auth-service/internal/security"
	"context"
	"time"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	NeedsRehash(digest string) bool
}

// TokenCodec : подписанные токены без серверного состояния
type TokenCodec interface {
	Issue(subject string, purpose security.Purpose) (string, error)
	Parse(token string, expected security.Purpose) (string, error)
}

// RefreshTokenStore : непрозрачные одноразовые refresh-токены
type RefreshTokenStore interface {
	Issue(ctx context.Context, accountUUID string) (string, error)
	Validate(ctx context.Context, token string) (string, bool, error)
	Revoke(ctx context.Context, token string) error
	Rotate(ctx context.Context, oldToken string) (accountUUID string, newToken string, err error)
}

type TOTPVerifier interface {
	NewSecret() (string, error)
	ProvisioningURI(secret, accountLabel, issuer string) string
	Verify(secret, code string, now time.Time) bool
}
