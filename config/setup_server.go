package config

import (
	"errors"
	"fmt"
	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	MailDriverLog   = "log"
	MailDriverSMTP  = "smtp"
	MailDriverRedis = "redis"

	envPrefix          = "AUTH_"
	minSecretKeyLength = 32
)

type AppConfig struct {
	ServerAddr     string         `yaml:"serverAddr" env:"SERVER_ADDR"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig" envPrefix:"DATABASE_"`
	RedisConfig    RedisConfig    `yaml:"redisConfig" envPrefix:"REDIS_"`
	Storage        StorageConfig  `yaml:"storage" envPrefix:"STORAGE_"`
	Tokens         TokenConfig    `yaml:"tokens" envPrefix:"TOKENS_"`
	TOTP           TOTPConfig     `yaml:"totp" envPrefix:"TOTP_"`
	Password       PasswordConfig `yaml:"password" envPrefix:"PASSWORD_"`
	Policy         PolicyConfig   `yaml:"policy" envPrefix:"POLICY_"`
	Frontend       FrontendConfig `yaml:"frontend" envPrefix:"FRONTEND_"`
	Mail           MailConfig     `yaml:"mail" envPrefix:"MAIL_"`
	Logging        LoggingConfig  `yaml:"logging" envPrefix:"LOGGING_"`
	Tracing        TracingConfig  `yaml:"tracing" envPrefix:"TRACING_"`
}

// LoadConfig : читает yaml, поверх него переменные окружения AUTH_*, затем значения по умолчанию
func LoadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) ApplyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}

	if c.Tokens.Issuer == "" {
		c.Tokens.Issuer = "auth-service"
	}
	if c.Tokens.AccessTokenTTL == 0 {
		c.Tokens.AccessTokenTTL = 30 * time.Minute
	}
	if c.Tokens.RefreshTokenTTL == 0 {
		c.Tokens.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if c.Tokens.PasswordResetTTL == 0 {
		c.Tokens.PasswordResetTTL = time.Hour
	}
	if c.Tokens.EmailVerificationTTL == 0 {
		c.Tokens.EmailVerificationTTL = 24 * time.Hour
	}

	if c.TOTP.Issuer == "" {
		c.TOTP.Issuer = c.Tokens.Issuer
	}
	if c.TOTP.Digits == 0 {
		c.TOTP.Digits = 6
	}
	if c.TOTP.Period == 0 {
		c.TOTP.Period = 30
	}
	if c.TOTP.Skew == nil {
		skew := DefaultTOTPSkew
		c.TOTP.Skew = &skew
	}

	if c.Password.Algorithm == "" {
		c.Password.Algorithm = "bcrypt"
	}
	if c.Password.BcryptCost == 0 {
		c.Password.BcryptCost = 10
	}
	if c.Password.Argon2Memory == 0 {
		c.Password.Argon2Memory = 64 * 1024
	}
	if c.Password.Argon2Time == 0 {
		c.Password.Argon2Time = 1
	}
	if c.Password.Argon2Parallelism == 0 {
		c.Password.Argon2Parallelism = 2
	}
	if c.Password.MinLength == 0 {
		c.Password.MinLength = 8
	}

	if c.Policy.IssueTokensBeforeVerification == nil {
		issue := true
		c.Policy.IssueTokensBeforeVerification = &issue
	}

	if c.Frontend.BaseURL == "" {
		c.Frontend.BaseURL = "http://localhost:3000"
	}

	if c.Mail.Driver == "" {
		c.Mail.Driver = MailDriverLog
	}
	if c.Mail.From == "" {
		c.Mail.From = "no-reply@localhost"
	}
	if c.Mail.SMTPPort == 0 {
		c.Mail.SMTPPort = 587
	}
	if c.Mail.QueueKey == "" {
		c.Mail.QueueKey = "mail:outbox"
	}
	if c.Mail.SendTimeout == 0 {
		c.Mail.SendTimeout = 10 * time.Second
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "auth-service"
	}
}

func (c *AppConfig) Validate() error {
	var errs []error

	if len(c.Tokens.SecretKey) < minSecretKeyLength {
		errs = append(errs, fmt.Errorf("tokens.secret_key должен быть не короче %d байт", minSecretKeyLength))
	}
	if c.Tokens.AccessTokenTTL <= 0 || c.Tokens.RefreshTokenTTL <= 0 ||
		c.Tokens.PasswordResetTTL <= 0 || c.Tokens.EmailVerificationTTL <= 0 {
		errs = append(errs, errors.New("время жизни токенов должно быть положительным"))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.DatabaseConfig.DSN == "" {
			errs = append(errs, errors.New("databaseConfig.dsn обязателен для storage.driver=postgres"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("неизвестный storage.driver: %q", c.Storage.Driver))
	}

	switch strings.ToLower(c.Password.Algorithm) {
	case "bcrypt", "argon2id":
	default:
		errs = append(errs, fmt.Errorf("неизвестный password.algorithm: %q", c.Password.Algorithm))
	}

	switch c.Mail.Driver {
	case MailDriverLog:
	case MailDriverSMTP:
		if c.Mail.SMTPHost == "" {
			errs = append(errs, errors.New("mail.smtp_host обязателен для mail.driver=smtp"))
		}
	case MailDriverRedis:
		if c.RedisConfig.Addr == "" {
			errs = append(errs, errors.New("redisConfig.addr обязателен для mail.driver=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("неизвестный mail.driver: %q", c.Mail.Driver))
	}

	if c.TOTP.Digits < 6 || c.TOTP.Digits > 8 {
		errs = append(errs, errors.New("totp.digits должен быть от 6 до 8"))
	}
	if c.TOTP.Period <= 0 {
		errs = append(errs, errors.New("totp.period должен быть положительным"))
	}
	// код старше предыдущего шага не принимается
	if skew := c.TOTP.SkewSteps(); skew < 0 || skew > 1 {
		errs = append(errs, fmt.Errorf("totp.skew должен быть 0 или 1, получено %d", skew))
	}

	return errors.Join(errs...)
}

// IssueTokensOnRegister : политика выдачи токенов неподтвержденным учетным записям
func (c *AppConfig) IssueTokensOnRegister() bool {
	return c.Policy.IssueTokensBeforeVerification == nil || *c.Policy.IssueTokensBeforeVerification
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}

// SetupLogger : создает zap логгер и делает его глобальным (zap.L())
func SetupLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
