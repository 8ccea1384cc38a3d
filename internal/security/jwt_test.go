package security

import (
	"auth-service/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-test-secret-key-32"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		SecretKey:            testSecret,
		Issuer:               "auth-service",
		AccessTokenTTL:       30 * time.Minute,
		RefreshTokenTTL:      720 * time.Hour,
		PasswordResetTTL:     time.Hour,
		EmailVerificationTTL: 24 * time.Hour,
	}
}

func newTestCodec(t *testing.T) (*TokenCodec, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := NewTokenCodec(testTokenConfig(), WithClock(clock.Now))
	require.NoError(t, err)
	return codec, clock
}

func TestTokenCodec_IssueAndParse(t *testing.T) {
	codec, _ := newTestCodec(t)

	for _, purpose := range []Purpose{PurposeAccess, PurposePasswordReset, PurposeEmailVerify} {
		token, err := codec.Issue("user@example.com", purpose)
		require.NoError(t, err)

		subject, err := codec.Parse(token, purpose)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", subject)
	}
}

func TestTokenCodec_PerPurposeTTL(t *testing.T) {
	codec, _ := newTestCodec(t)

	assert.Equal(t, 30*time.Minute, codec.ttl[PurposeAccess])
	assert.Equal(t, time.Hour, codec.ttl[PurposePasswordReset])
	assert.Equal(t, 24*time.Hour, codec.ttl[PurposeEmailVerify])

	_, err := codec.Issue("user@example.com", Purpose("refresh"))
	assert.ErrorIs(t, err, ErrUnknownPurpose)
}

func TestTokenCodec_ExpiryWithSubSecondClock(t *testing.T) {
	codec, clock := newTestCodec(t)
	clock.now = time.Date(2025, 1, 1, 12, 0, 0, 700_000_000, time.UTC)

	token, err := codec.Issue("user@example.com", PurposePasswordReset)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	issuedAt := claims.IssuedAt.Time
	assert.True(t, issuedAt.Equal(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, claims.ExpiresAt.Time.Equal(issuedAt.Add(time.Hour)))

	clock.now = issuedAt.Add(time.Hour - 500*time.Millisecond)
	_, err = codec.Parse(token, PurposePasswordReset)
	require.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour)
	_, err = codec.Parse(token, PurposePasswordReset)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_Expiry(t *testing.T) {
	codec, clock := newTestCodec(t)

	token, err := codec.issue("user@example.com", PurposePasswordReset, time.Hour)
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Second)
	_, err = codec.Parse(token, PurposePasswordReset)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = codec.Parse(token, PurposePasswordReset)
	assert.ErrorIs(t, err, ErrTokenExpired)

	clock.Advance(time.Hour)
	_, err = codec.Parse(token, PurposePasswordReset)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_WrongPurpose(t *testing.T) {
	codec, _ := newTestCodec(t)

	access, err := codec.Issue("user@example.com", PurposeAccess)
	require.NoError(t, err)
	reset, err := codec.Issue("user@example.com", PurposePasswordReset)
	require.NoError(t, err)

	_, err = codec.Parse(access, PurposePasswordReset)
	assert.ErrorIs(t, err, ErrTokenWrongPurpose)

	_, err = codec.Parse(access, PurposeEmailVerify)
	assert.ErrorIs(t, err, ErrTokenWrongPurpose)

	_, err = codec.Parse(reset, PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenWrongPurpose)
}

func TestTokenCodec_SignatureChecks(t *testing.T) {
	codec, clock := newTestCodec(t)

	token, err := codec.Issue("user@example.com", PurposeAccess)
	require.NoError(t, err)

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]

		_, err := codec.Parse(tampered, PurposeAccess)
		assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("other secret", func(t *testing.T) {
		cfg := testTokenConfig()
		cfg.SecretKey = "another-secret-another-secret-32b"
		other, err := NewTokenCodec(cfg, WithClock(clock.Now))
		require.NoError(t, err)

		_, err = other.Parse(token, PurposeAccess)
		assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Parse("not-a-token", PurposeAccess)
		assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := Claims{
			Purpose: PurposeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user@example.com",
				Issuer:    "auth-service",
				ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Parse(unsigned, PurposeAccess)
		assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("tampered beats expired", func(t *testing.T) {
		expired, err := codec.issue("user@example.com", PurposeAccess, time.Second)
		require.NoError(t, err)
		clock.Advance(time.Minute)
		defer clock.Advance(-time.Minute)

		_, err = codec.Parse(expired+"x", PurposeAccess)
		assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})
}

func TestTokenCodec_Reason(t *testing.T) {
	assert.Equal(t, "expired", Reason(ErrTokenExpired))
	assert.Equal(t, "wrong_purpose", Reason(ErrTokenWrongPurpose))
	assert.Equal(t, "signature_invalid", Reason(ErrTokenSignatureInvalid))
	assert.Equal(t, "", Reason(nil))
}

func TestNewTokenCodec_Validation(t *testing.T) {
	cfg := testTokenConfig()
	cfg.SecretKey = ""
	_, err := NewTokenCodec(cfg)
	assert.Error(t, err)

	cfg = testTokenConfig()
	cfg.PasswordResetTTL = 0
	_, err = NewTokenCodec(cfg)
	assert.Error(t, err)
}
