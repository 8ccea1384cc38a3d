package config

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "config-test-secret-config-test-secret"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAMLWithDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: memory
tokens:
  secret_key: "`+testSecret+`"
  access_token_ttl: 15m
totp:
  issuer: "Auth Service"
policy:
  issue_tokens_before_verification: false
mail:
  send_timeout: 3s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Tokens.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Tokens.RefreshTokenTTL)
	assert.Equal(t, time.Hour, cfg.Tokens.PasswordResetTTL)
	assert.Equal(t, 24*time.Hour, cfg.Tokens.EmailVerificationTTL)
	assert.Equal(t, "auth-service", cfg.Tokens.Issuer)
	assert.Equal(t, "Auth Service", cfg.TOTP.Issuer)
	assert.Equal(t, 6, cfg.TOTP.Digits)
	assert.Equal(t, 30, cfg.TOTP.Period)
	assert.Equal(t, 1, cfg.TOTP.SkewSteps())
	assert.Equal(t, "bcrypt", cfg.Password.Algorithm)
	assert.Equal(t, MailDriverLog, cfg.Mail.Driver)
	assert.Equal(t, 3*time.Second, cfg.Mail.SendTimeout)
	assert.False(t, cfg.IssueTokensOnRegister())
}

func intPtr(n int) *int {
	return &n
}

func TestLoadConfig_ZeroTOTPSkew(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: memory
tokens:
  secret_key: "`+testSecret+`"
totp:
  skew: 0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.TOTP.Skew)
	assert.Equal(t, 0, cfg.TOTP.SkewSteps())

	t.Setenv("AUTH_TOTP_SKEW", "2")
	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totp.skew")
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: postgres
databaseConfig:
  dsn: "postgres://from-yaml"
tokens:
  secret_key: "short"
`)

	t.Setenv("AUTH_TOKENS_SECRET_KEY", testSecret)
	t.Setenv("AUTH_DATABASE_DSN", "postgres://from-env")
	t.Setenv("AUTH_TOKENS_REFRESH_TOKEN_TTL", "48h")
	t.Setenv("AUTH_MAIL_DRIVER", MailDriverRedis)
	t.Setenv("AUTH_REDIS_ADDR", "localhost:6379")
	t.Setenv("AUTH_POLICY_ISSUE_TOKENS_BEFORE_VERIFICATION", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, testSecret, cfg.Tokens.SecretKey)
	assert.Equal(t, "postgres://from-env", cfg.DatabaseConfig.DSN)
	assert.Equal(t, 48*time.Hour, cfg.Tokens.RefreshTokenTTL)
	assert.Equal(t, MailDriverRedis, cfg.Mail.Driver)
	assert.True(t, cfg.IssueTokensOnRegister())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestAppConfig_Validate(t *testing.T) {
	valid := func() *AppConfig {
		cfg := &AppConfig{
			Storage: StorageConfig{Driver: StorageDriverMemory},
			Tokens:  TokenConfig{SecretKey: testSecret},
		}
		cfg.ApplyDefaults()
		return cfg
	}

	require.NoError(t, valid().Validate())
	assert.True(t, valid().IssueTokensOnRegister(), "по умолчанию токены выдаются сразу")

	tests := []struct {
		name    string
		mutate  func(cfg *AppConfig)
		message string
	}{
		{"short secret", func(cfg *AppConfig) { cfg.Tokens.SecretKey = "short" }, "tokens.secret_key"},
		{"negative ttl", func(cfg *AppConfig) { cfg.Tokens.AccessTokenTTL = -time.Minute }, "время жизни"},
		{"postgres without dsn", func(cfg *AppConfig) { cfg.Storage.Driver = StorageDriverPostgres }, "databaseConfig.dsn"},
		{"unknown storage", func(cfg *AppConfig) { cfg.Storage.Driver = "mongo" }, "storage.driver"},
		{"unknown algorithm", func(cfg *AppConfig) { cfg.Password.Algorithm = "md5" }, "password.algorithm"},
		{"smtp without host", func(cfg *AppConfig) { cfg.Mail.Driver = MailDriverSMTP }, "mail.smtp_host"},
		{"redis without addr", func(cfg *AppConfig) { cfg.Mail.Driver = MailDriverRedis }, "redisConfig.addr"},
		{"unknown mail driver", func(cfg *AppConfig) { cfg.Mail.Driver = "pigeon" }, "mail.driver"},
		{"too many digits", func(cfg *AppConfig) { cfg.TOTP.Digits = 10 }, "totp.digits"},
		{"negative skew", func(cfg *AppConfig) { cfg.TOTP.Skew = intPtr(-1) }, "totp.skew"},
		{"skew wider than one step", func(cfg *AppConfig) { cfg.TOTP.Skew = intPtr(3) }, "totp.skew"},
		{"zero period", func(cfg *AppConfig) { cfg.TOTP.Period = -30 }, "totp.period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSetupServer(t *testing.T) {
	server, router := SetupServer(":9090")
	assert.Equal(t, ":9090", server.Addr)
	assert.Equal(t, router, server.Handler)
	assert.NotZero(t, server.ReadHeaderTimeout)
}

func TestSetupTracing_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), TracingConfig{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
