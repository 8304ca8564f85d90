package store

import (
	"context"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductFilter narrows a listing query. Zero values mean "no constraint".
type ProductFilter struct {
	Category string // exact category id; "" or "all" matches every category
	Search   string // case-insensitive substring of title or description
	Skip     int
	Limit    int
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product without side effects.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// GetForUpdate is GetByID with a row lock; it must run inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// IncrementViews atomically bumps the view counter and returns the product
	// as it is after the increment. Returns ErrProductNotFound if absent.
	IncrementViews(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// ListAvailable returns available products matching filter, newest first.
	ListAvailable(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	// ListBySeller returns every product of a seller regardless of availability, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error)

	// Update replaces the editable fields of a product and its UpdatedAt.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product. Returns ErrProductNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProductStore instance that uses the provided transaction.
	WithTx(tx pgx.Tx) ProductStore
}
