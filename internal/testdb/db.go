//go:build integration

package testdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/ecofinds/ecofinds-api/internal/platform/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Timeout bounds every setup step.
const Timeout = 10 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// DatabaseURL returns the integration database URL, preferring
// ECOFINDS_TEST_DATABASE_URL over DATABASE_URL.
func DatabaseURL() string {
	if url := os.Getenv("ECOFINDS_TEST_DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// Pool returns a migrated pool closed at the end of the test, or skips the
// test when no database is configured.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skip("ECOFINDS_TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{URL: url, MaxConns: 4}, log)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(pool.Close)

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, pool, log)
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	return pool
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, pool *pgxpool.Pool, fn func(ctx context.Context, tx pgx.Tx)) {
	t.Helper()

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			t.Logf("warning: failed to roll back test transaction: %v", err)
		}
	}()

	fn(ctx, tx)
}
