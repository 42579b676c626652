package app

import (
	"context"

	_ "github.com/lib/pq"

	"gatekeeper/internal/config"
	"gatekeeper/internal/db"
	"gatekeeper/internal/email"
	"gatekeeper/internal/logger"
	"gatekeeper/internal/redis"
	"gatekeeper/internal/session"
	"gatekeeper/internal/user"
)

type Infra struct {
	Users        user.Store
	SessionStore session.Store
	Email        email.Sender

	cleanup func() error
}

// setupInfra wires the external collaborators. Each one falls back to an
// in-process implementation when unconfigured, so the service runs with
// zero infrastructure in development.
func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.DatabaseDSN != "" {
		database, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigration(ctx, database.DB); err != nil {
			return nil, err
		}
		logger.Info("database ready", nil)
		infra.Users = user.NewPostgresStore(database)
		infra.cleanup = database.Close
	} else {
		logger.Warn("DATABASE_DSN not set, using in-memory user store", nil)
		infra.Users = user.NewMemoryStore()
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		logger.Info("redis ready", nil)
		infra.SessionStore = session.NewRedisStore(redisClient.Client)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory session store", nil)
		infra.SessionStore = session.NewMemoryStore()
	}

	if cfg.SMTPHost != "" {
		infra.Email = email.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUsername,
			cfg.SMTPPassword,
			cfg.EmailFrom,
		)
		logger.Info("smtp sender configured", map[string]any{"host": cfg.SMTPHost})
	} else {
		logger.Warn("SMTP_HOST not set, emails will be logged instead of sent", nil)
		infra.Email = email.NewLogSender()
	}

	return infra, nil
}
