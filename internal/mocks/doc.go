// Package mocks provides centralized mock implementations for testing.
//
// The store mocks keep their data in memory and honour the same contracts as
// the PostgreSQL stores (sentinel errors, uniqueness, counter floors), so a
// full request flow can be exercised without a database. Every method can be
// overridden through its Fn field.
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
//
// MockTransactor runs the function directly with a nil transaction; the
// in-memory stores return themselves from WithTx.
package mocks
