package security

import (
	"auth-service/config"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// 160 бит, как рекомендует RFC 4226
const totpSecretBytes = 20

var (
	totpEncoding     = base32.StdEncoding.WithPadding(base32.NoPadding)
	errInvalidSecret = errors.New("invalid totp secret")
)

// TOTP : RFC 6238, HMAC-SHA1
type TOTP struct {
	digits int
	period int64
	skew   int
}

func NewTOTP(cfg config.TOTPConfig) *TOTP {
	t := &TOTP{
		digits: cfg.Digits,
		period: int64(cfg.Period),
		skew:   cfg.SkewSteps(),
	}
	if t.digits == 0 {
		t.digits = 6
	}
	if t.period <= 0 {
		t.period = 30
	}
	if t.skew < 0 {
		t.skew = 0
	}
	if t.skew > 1 {
		t.skew = 1
	}
	return t
}

func (t *TOTP) NewSecret() (string, error) {
	raw := make([]byte, totpSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("ошибка генерации секрета totp: %w", err)
	}
	return totpEncoding.EncodeToString(raw), nil
}

// ProvisioningURI : otpauth:// ссылка для QR-кода
func (t *TOTP) ProvisioningURI(secret, accountLabel, issuer string) string {
	label := url.PathEscape(issuer + ":" + accountLabel)

	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", strconv.Itoa(t.digits))
	v.Set("period", strconv.FormatInt(t.period, 10))

	return "otpauth://totp/" + label + "?" + v.Encode()
}

// Verify : текущий шаг и соседние шаги в пределах skew
func (t *TOTP) Verify(secret, code string, now time.Time) bool {
	code = strings.TrimSpace(code)
	if len(code) != t.digits || !isDigits(code) {
		return false
	}

	key, err := decodeSecret(secret)
	if err != nil {
		return false
	}

	counter := now.Unix() / t.period
	for step := -t.skew; step <= t.skew; step++ {
		c := counter + int64(step)
		if c < 0 {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(hotp(key, c, t.digits)), []byte(code)) == 1 {
			return true
		}
	}

	return false
}

// GenerateCode : код для шага, содержащего момент at
func (t *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return hotp(key, at.Unix()/t.period, t.digits), nil
}

func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(strings.TrimSpace(secret), "="))
	key, err := totpEncoding.DecodeString(normalized)
	if err != nil || len(key) == 0 {
		return nil, errInvalidSecret
	}
	return key, nil
}

func hotp(key []byte, counter int64, digits int) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, key)
	_, _ = mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	mod := 1
	for i := 0; i < digits; i++ {
		mod *= 10
	}

	return fmt.Sprintf("%0*d", digits, bin%mod)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
