package config

import (
	"fmt"
	"formcaptcha/internal/core/domain/captcha"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port       int  `env:"PORT" envDefault:"8000"`
	IsTestMode bool `env:"TEST_MODE"`

	PostgresqlURL string `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL      string `env:"REDIS_URL,notEmpty"`

	RabbitmqURL       string `env:"RABBITMQ_URL,notEmpty"`
	RabbitmqMailQueue string `env:"RABBITMQ_MAIL_QUEUE" envDefault:"mail-submitted"`

	CaptchaMode       captcha.Mode  `env:"CAPTCHA_MODE" envDefault:"calculating"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"formcaptcha_session"`

	AllowedOrigins           []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	SubmitRateLimitPerMinute uint16   `env:"SUBMIT_RATE_LIMIT_PER_MINUTE" envDefault:"10"`

	SentryDsn string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.SubmitRateLimitPerMinute == 0 {
		return nil, fmt.Errorf("SUBMIT_RATE_LIMIT_PER_MINUTE must be positive")
	}
	return cfg, nil
}
