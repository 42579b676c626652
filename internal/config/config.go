package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort     string `envconfig:"APP_PORT" default:"8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`

	// BaseURL is used to build links embedded in outbound emails.
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	DatabaseDSN string `envconfig:"DATABASE_DSN"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	SessionDuration    time.Duration `envconfig:"SESSION_DURATION" default:"24h"`
	RememberMeDuration time.Duration `envconfig:"REMEMBER_ME_DURATION" default:"720h"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"no-reply@gatekeeper.local"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in a production-classified
// environment. Session cookies are only marked Secure in production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
