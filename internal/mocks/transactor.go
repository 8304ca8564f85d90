package mocks

import (
	"context"

	"github.com/ecofinds/ecofinds-api/internal/store"
)

// MockTransactor implements store.Transactor without a database.
type MockTransactor struct {
	// WithinTxFn overrides the default pass-through behaviour.
	WithinTxFn func(ctx context.Context, fn store.TxFn) error

	// Calls counts WithinTx invocations.
	Calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// WithinTx calls fn with a nil transaction. Unlike a real transaction the
// in-memory stores do not roll back when fn fails.
func (m *MockTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}
