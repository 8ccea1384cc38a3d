package security

import (
	"auth-service/config"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"time"
)

// Purpose : пространство имён токена, токен одного назначения не принимается для другого
type Purpose string

const (
	PurposeAccess        Purpose = "access"
	PurposePasswordReset Purpose = "password_reset"
	PurposeEmailVerify   Purpose = "email_verify"
)

var (
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenWrongPurpose     = errors.New("token purpose mismatch")
	ErrUnknownPurpose        = errors.New("unknown token purpose")
)

type Claims struct {
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenCodec : подписанные HS256 токены без серверного состояния.
// Отозвать такой токен до истечения срока нельзя.
type TokenCodec struct {
	secretKey []byte
	issuer    string
	ttl       map[Purpose]time.Duration
	now       func() time.Time
}

type CodecOption func(*TokenCodec)

// WithClock : подменяет источник времени (для тестов)
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

func NewTokenCodec(cfg config.TokenConfig, opts ...CodecOption) (*TokenCodec, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("пустой ключ подписи токенов")
	}

	codec := &TokenCodec{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl: map[Purpose]time.Duration{
			PurposeAccess:        cfg.AccessTokenTTL,
			PurposePasswordReset: cfg.PasswordResetTTL,
			PurposeEmailVerify:   cfg.EmailVerificationTTL,
		},
		now: time.Now,
	}
	for purpose, ttl := range codec.ttl {
		if ttl <= 0 {
			return nil, fmt.Errorf("время жизни токена %q должно быть положительным", purpose)
		}
	}
	for _, opt := range opts {
		opt(codec)
	}

	return codec, nil
}

// Issue : выпускает токен со сроком жизни, заданным для назначения
func (c *TokenCodec) Issue(subject string, purpose Purpose) (string, error) {
	ttl, ok := c.ttl[purpose]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPurpose, purpose)
	}
	return c.issue(subject, purpose, ttl)
}

// issue : iat и exp хранятся с точностью до секунды, поэтому момент выпуска тоже округляется вниз,
// и exp ровно iat+ttl
func (c *TokenCodec) issue(subject string, purpose Purpose, ttl time.Duration) (string, error) {
	now := c.now().Truncate(time.Second)
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

// Parse : порядок проверок - подпись, срок действия, назначение.
// Возвращает subject или одну из ошибок ErrTokenSignatureInvalid, ErrTokenExpired, ErrTokenWrongPurpose.
func (c *TokenCodec) Parse(tokenStr string, expected Purpose) (string, error) {
	claims := &Claims{}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		options = append(options, jwt.WithIssuer(c.issuer))
	}

	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secretKey, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	}

	if claims.Purpose != expected {
		return "", ErrTokenWrongPurpose
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: пустой subject", ErrTokenSignatureInvalid)
	}

	return claims.Subject, nil
}

// Reason : причина отказа для логов, наружу не отдается
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenWrongPurpose):
		return "wrong_purpose"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "signature_invalid"
	default:
		return "unknown"
	}
}
