package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/ecofinds/ecofinds-api/internal/platform/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// setupAppDatabase opens the connection pool and applies pending migrations.
// The caller owns the returned pool and closes it on shutdown.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established")
	return pool, nil
}
