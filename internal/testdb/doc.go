//go:build integration

// Package testdb connects integration tests to a real PostgreSQL database.
//
// Tests are skipped unless ECOFINDS_TEST_DATABASE_URL (or DATABASE_URL) is set.
// The schema is migrated once per test binary, and each test runs inside a
// transaction that is rolled back when it finishes, so tests never see each
// other's rows.
//
//	func TestSomething(t *testing.T) {
//		pool := testdb.Pool(t)
//		testdb.WithTx(t, pool, func(ctx context.Context, tx pgx.Tx) {
//			users := postgres.NewPostgresUserStore(tx, logger)
//			...
//		})
//	}
package testdb
