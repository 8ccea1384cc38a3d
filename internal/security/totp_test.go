package security

import (
	"auth-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/url"
	"strings"
	"testing"
	"time"
)

// "12345678901234567890" в base32, секрет из RFC 6238
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func skew(n int) *int {
	return &n
}

func defaultTOTP() *TOTP {
	return NewTOTP(config.TOTPConfig{Digits: 6, Period: 30, Skew: skew(1)})
}

func TestTOTP_RFC6238Vectors(t *testing.T) {
	tests := []struct {
		unix   int64
		digits int
		code   string
	}{
		{unix: 59, digits: 8, code: "94287082"},
		{unix: 1111111109, digits: 8, code: "07081804"},
		{unix: 1111111111, digits: 8, code: "14050471"},
		{unix: 1234567890, digits: 8, code: "89005924"},
		{unix: 2000000000, digits: 8, code: "69279037"},
		{unix: 20000000000, digits: 8, code: "65353130"},
		{unix: 59, digits: 6, code: "287082"},
		{unix: 1234567890, digits: 6, code: "005924"},
	}

	for _, tt := range tests {
		totp := NewTOTP(config.TOTPConfig{Digits: tt.digits, Period: 30, Skew: skew(0)})
		at := time.Unix(tt.unix, 0)

		code, err := totp.GenerateCode(rfcSecret, at)
		require.NoError(t, err)
		assert.Equal(t, tt.code, code, "unix=%d", tt.unix)
		assert.True(t, totp.Verify(rfcSecret, tt.code, at))
	}
}

func TestTOTP_SkewWindow(t *testing.T) {
	totp := defaultTOTP()
	now := time.Unix(1700000000, 0)

	current, err := totp.GenerateCode(rfcSecret, now)
	require.NoError(t, err)
	previous, err := totp.GenerateCode(rfcSecret, now.Add(-30*time.Second))
	require.NoError(t, err)
	next, err := totp.GenerateCode(rfcSecret, now.Add(30*time.Second))
	require.NoError(t, err)
	twoStepsAgo, err := totp.GenerateCode(rfcSecret, now.Add(-60*time.Second))
	require.NoError(t, err)
	tenMinutesAgo, err := totp.GenerateCode(rfcSecret, now.Add(-10*time.Minute))
	require.NoError(t, err)

	assert.True(t, totp.Verify(rfcSecret, current, now))
	assert.True(t, totp.Verify(rfcSecret, previous, now))
	assert.True(t, totp.Verify(rfcSecret, next, now))

	if twoStepsAgo != current && twoStepsAgo != previous && twoStepsAgo != next {
		assert.False(t, totp.Verify(rfcSecret, twoStepsAgo, now))
	}
	if tenMinutesAgo != current && tenMinutesAgo != previous && tenMinutesAgo != next {
		assert.False(t, totp.Verify(rfcSecret, tenMinutesAgo, now))
	}
}

func TestTOTP_ZeroSkewAcceptsOnlyCurrentStep(t *testing.T) {
	totp := NewTOTP(config.TOTPConfig{Digits: 6, Period: 30, Skew: skew(0)})
	now := time.Unix(1700000000, 0)

	current, err := totp.GenerateCode(rfcSecret, now)
	require.NoError(t, err)
	previous, err := totp.GenerateCode(rfcSecret, now.Add(-30*time.Second))
	require.NoError(t, err)

	assert.True(t, totp.Verify(rfcSecret, current, now))
	if previous != current {
		assert.False(t, totp.Verify(rfcSecret, previous, now))
	}
}

func TestTOTP_SkewCappedAtOneStep(t *testing.T) {
	totp := NewTOTP(config.TOTPConfig{Digits: 6, Period: 30, Skew: skew(5)})
	now := time.Unix(1700000000, 0)

	current, err := totp.GenerateCode(rfcSecret, now)
	require.NoError(t, err)
	previous, err := totp.GenerateCode(rfcSecret, now.Add(-30*time.Second))
	require.NoError(t, err)
	twoStepsAgo, err := totp.GenerateCode(rfcSecret, now.Add(-60*time.Second))
	require.NoError(t, err)

	if twoStepsAgo != current && twoStepsAgo != previous {
		next, err := totp.GenerateCode(rfcSecret, now.Add(30*time.Second))
		require.NoError(t, err)
		if twoStepsAgo != next {
			assert.False(t, totp.Verify(rfcSecret, twoStepsAgo, now))
		}
	}
}

func TestTOTP_RejectsMalformedCodes(t *testing.T) {
	totp := defaultTOTP()
	now := time.Unix(1700000000, 0)

	code, err := totp.GenerateCode(rfcSecret, now)
	require.NoError(t, err)

	assert.False(t, totp.Verify(rfcSecret, "", now))
	assert.False(t, totp.Verify(rfcSecret, "12345", now))
	assert.False(t, totp.Verify(rfcSecret, "1234567", now))
	assert.False(t, totp.Verify(rfcSecret, "12a456", now))
	assert.False(t, totp.Verify(rfcSecret, code+"0", now))
	assert.False(t, totp.Verify("not base32!", code, now))
	assert.False(t, totp.Verify("", code, now))
}

func TestTOTP_SecretNormalization(t *testing.T) {
	totp := defaultTOTP()
	now := time.Unix(1700000000, 0)

	code, err := totp.GenerateCode(rfcSecret, now)
	require.NoError(t, err)

	assert.True(t, totp.Verify(strings.ToLower(rfcSecret), code, now))
	assert.True(t, totp.Verify(rfcSecret+"====", code, now))
	assert.True(t, totp.Verify(rfcSecret, " "+code+" ", now))
}

func TestTOTP_NewSecret(t *testing.T) {
	totp := defaultTOTP()

	first, err := totp.NewSecret()
	require.NoError(t, err)
	second, err := totp.NewSecret()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// 20 байт = 32 символа base32 без выравнивания
	assert.Len(t, first, 32)
	assert.NotContains(t, first, "=")

	code, err := totp.GenerateCode(first, time.Now())
	require.NoError(t, err)
	assert.True(t, totp.Verify(first, code, time.Now()))
}

func TestTOTP_ProvisioningURI(t *testing.T) {
	totp := defaultTOTP()

	uri := totp.ProvisioningURI(rfcSecret, "user@example.com", "Auth Service")

	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "otpauth", parsed.Scheme)
	assert.Equal(t, "totp", parsed.Host)
	assert.Equal(t, "/Auth Service:user@example.com", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, rfcSecret, query.Get("secret"))
	assert.Equal(t, "Auth Service", query.Get("issuer"))
	assert.Equal(t, "SHA1", query.Get("algorithm"))
	assert.Equal(t, "6", query.Get("digits"))
	assert.Equal(t, "30", query.Get("period"))
}
