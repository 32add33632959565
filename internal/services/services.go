package services

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/registry"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services and the live sessions.
type Services struct {
	Postgres *sqlx.DB // nil when the result archive is disabled
	Redis    *redis.Client
	Sessions *registry.Registry
}

func InitServices(cfg *config.ServerConfig, logger *slog.Logger) (*Services, error) {
	// Initialize database, if configured
	var postgres *sqlx.DB
	if cfg.PostgresURL != "" {
		var err error
		postgres, err = InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("DRAUGHTS_POSTGRES_URL is not set, finished games will not be archived")
	}

	// Initialize Redis
	redis, err := InitRedis(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	sessions, err := registry.New(cfg.MaxSessions, cfg.SessionIdleTimeout, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		Postgres: postgres,
		Redis:    redis,
		Sessions: sessions,
	}, nil
}
