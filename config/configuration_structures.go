package config

import "time"

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DSN"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// StorageConfig : postgres или memory (локальная разработка)
type StorageConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
}

type TokenConfig struct {
	SecretKey            string        `yaml:"secret_key" env:"SECRET_KEY"`
	Issuer               string        `yaml:"issuer" env:"ISSUER"`
	AccessTokenTTL       time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL      time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL"`
	PasswordResetTTL     time.Duration `yaml:"password_reset_ttl" env:"PASSWORD_RESET_TTL"`
	EmailVerificationTTL time.Duration `yaml:"email_verification_ttl" env:"EMAIL_VERIFICATION_TTL"`
}

// DefaultTOTPSkew : сколько соседних шагов принимается по умолчанию
const DefaultTOTPSkew = 1

type TOTPConfig struct {
	Issuer string `yaml:"issuer" env:"ISSUER"`
	Digits int    `yaml:"digits" env:"DIGITS"`
	Period int    `yaml:"period" env:"PERIOD"`
	// Skew : 0 или 1, nil означает значение по умолчанию
	Skew *int `yaml:"skew" env:"SKEW"`
}

// SkewSteps : допустимое отклонение в шагах
func (c TOTPConfig) SkewSteps() int {
	if c.Skew == nil {
		return DefaultTOTPSkew
	}
	return *c.Skew
}

type PasswordConfig struct {
	Algorithm         string `yaml:"algorithm" env:"ALGORITHM"`
	BcryptCost        int    `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	Argon2Memory      uint32 `yaml:"argon2_memory" env:"ARGON2_MEMORY"`
	Argon2Time        uint32 `yaml:"argon2_time" env:"ARGON2_TIME"`
	Argon2Parallelism uint8  `yaml:"argon2_parallelism" env:"ARGON2_PARALLELISM"`
	MinLength         int    `yaml:"min_length" env:"MIN_LENGTH"`
}

// PolicyConfig : IssueTokensBeforeVerification - выдавать ли токены сразу после регистрации
type PolicyConfig struct {
	IssueTokensBeforeVerification *bool `yaml:"issue_tokens_before_verification" env:"ISSUE_TOKENS_BEFORE_VERIFICATION"`
}

type FrontendConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

type MailConfig struct {
	Driver            string        `yaml:"driver" env:"DRIVER"`
	From              string        `yaml:"from" env:"FROM"`
	SMTPHost          string        `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort          int           `yaml:"smtp_port" env:"SMTP_PORT"`
	SMTPUsername      string        `yaml:"smtp_username" env:"SMTP_USERNAME"`
	SMTPPassword      string        `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	QueueKey          string        `yaml:"queue_key" env:"QUEUE_KEY"`
	SendTimeout       time.Duration `yaml:"send_timeout" env:"SEND_TIMEOUT"`
	TemplatesBucket   string        `yaml:"templates_bucket" env:"TEMPLATES_BUCKET"`
	TemplatesRegion   string        `yaml:"templates_region" env:"TEMPLATES_REGION"`
	TemplatesEndpoint string        `yaml:"templates_endpoint" env:"TEMPLATES_ENDPOINT"`
	TemplatesLocal    bool          `yaml:"templates_local" env:"TEMPLATES_LOCAL"`
}

type LoggingConfig struct {
	Development bool `yaml:"development" env:"DEVELOPMENT"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}
