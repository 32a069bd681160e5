package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/config"
	"github.com/phonebook/phonebook/internal/pkg/database"
)

// Databases holds all database connections
type Databases struct {
	Postgres *database.PostgresDB
	Redis    *redis.Client
}

// initDatabases applies the schema and opens every configured connection.
// Redis is optional and only opened when REDIS_URL is set.
func initDatabases(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Databases, error) {
	dbs := &Databases{}

	if err := database.EnsureSchema(ctx, cfg.Database.URL); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	pgDB, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	dbs.Postgres = pgDB

	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			if cfg.RateLimit.Enabled {
				dbs.Close()
				return nil, fmt.Errorf("failed to initialize Redis: %w", err)
			}
			logger.Warn("failed to initialize Redis, continuing without it", zap.Error(err))
		}
		dbs.Redis = redisClient
	}

	return dbs, nil
}

// Close closes all database connections
func (dbs *Databases) Close() {
	if dbs.Redis != nil {
		_ = dbs.Redis.Close()
	}
	if dbs.Postgres != nil {
		dbs.Postgres.Close()
	}
}
