package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pingAttempts = 5
	pingBaseWait = 200 * time.Millisecond
)

// NewPool creates the process-wide connection pool and verifies connectivity.
// The caller owns the pool and must Close it at shutdown.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "database"))

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = 5 * time.Minute
	poolCfg.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := waitForDB(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("database connection pool ready",
		slog.Int("max_conns", int(poolCfg.MaxConns)),
		slog.String("host", poolCfg.ConnConfig.Host))
	return pool, nil
}

// waitForDB pings the pool with a linear backoff until it answers.
func waitForDB(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}

		wait := time.Duration(attempt) * pingBaseWait
		log.Warn("database ping failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", pingAttempts),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()))

		if attempt == pingAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("database ping cancelled: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("database unreachable after %d attempts: %w", pingAttempts, err)
}
