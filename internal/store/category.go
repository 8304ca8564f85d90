package store

import (
	"context"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CategoryStore defines the interface for category data persistence.
// The product_count column is only ever changed through AdjustCount and
// Reconcile; Create always stores a zero count.
type CategoryStore interface {
	// Seed inserts each category whose id is not present yet and returns the
	// number of rows inserted. Existing rows are left untouched.
	Seed(ctx context.Context, categories []*domain.Category) (int, error)

	// Create inserts a single category.
	// Returns ErrCategoryExists on an id or name collision.
	Create(ctx context.Context, category *domain.Category) error

	// Get retrieves a category by id. Returns ErrCategoryNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Category, error)

	// List returns every category sorted by name.
	List(ctx context.Context) ([]*domain.Category, error)

	// AdjustCount atomically adds delta to the stored counter, flooring at zero.
	// Returns ErrCategoryNotFound if the id is unknown.
	AdjustCount(ctx context.Context, id string, delta int) error

	// TotalCount returns the sum of all counters except the aggregate pseudo category.
	TotalCount(ctx context.Context) (int64, error)

	// Reconcile recomputes every counter from the products table and returns
	// the number of categories whose stored value changed.
	Reconcile(ctx context.Context) (int, error)

	// WithTx returns a new CategoryStore instance that uses the provided transaction.
	WithTx(tx pgx.Tx) CategoryStore
}
