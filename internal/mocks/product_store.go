package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MockProductStore implements store.ProductStore in memory.
type MockProductStore struct {
	CreateFn         func(ctx context.Context, product *domain.Product) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetForUpdateFn   func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	IncrementViewsFn func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListAvailableFn  func(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error)
	ListBySellerFn   func(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error)
	UpdateFn         func(ctx context.Context, product *domain.Product) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error

	// LastFilter records the filter passed to the most recent ListAvailable call.
	LastFilter store.ProductFilter

	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

// NewMockProductStore creates an empty in-memory product store.
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{products: make(map[uuid.UUID]*domain.Product)}
}

var _ store.ProductStore = (*MockProductStore)(nil)

// WithTx returns the same store; the mock has no transactions.
func (m *MockProductStore) WithTx(pgx.Tx) store.ProductStore {
	return m
}

// Create implements the ProductStore interface
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = copyProduct(product)
	return nil
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return copyProduct(p), nil
}

// GetForUpdate implements the ProductStore interface
func (m *MockProductStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// IncrementViews implements the ProductStore interface
func (m *MockProductStore) IncrementViews(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.IncrementViewsFn != nil {
		return m.IncrementViewsFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	p.Views++
	return copyProduct(p), nil
}

// ListAvailable implements the ProductStore interface
func (m *MockProductStore) ListAvailable(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	m.LastFilter = filter
	m.mu.Unlock()
	if m.ListAvailableFn != nil {
		return m.ListAvailableFn(ctx, filter)
	}

	search := strings.ToLower(filter.Search)
	matches := m.collect(func(p *domain.Product) bool {
		if !p.IsAvailable {
			return false
		}
		if filter.Category != "" && filter.Category != domain.AllCategoriesID && p.Category != filter.Category {
			return false
		}
		return search == "" ||
			strings.Contains(strings.ToLower(p.Title), search) ||
			strings.Contains(strings.ToLower(p.Description), search)
	})

	if filter.Skip >= len(matches) {
		return []*domain.Product{}, nil
	}
	matches = matches[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < len(matches) {
		matches = matches[:filter.Limit]
	}
	return matches, nil
}

// ListBySeller implements the ProductStore interface
func (m *MockProductStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	if m.ListBySellerFn != nil {
		return m.ListBySellerFn(ctx, sellerID)
	}
	return m.collect(func(p *domain.Product) bool { return p.SellerID == sellerID }), nil
}

// Update implements the ProductStore interface
func (m *MockProductStore) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, product)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[product.ID]
	if !ok {
		return store.ErrProductNotFound
	}
	updated := copyProduct(product)
	updated.Views = existing.Views
	updated.CreatedAt = existing.CreatedAt
	m.products[product.ID] = updated
	return nil
}

// Delete implements the ProductStore interface
func (m *MockProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// Len returns the number of stored products.
func (m *MockProductStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products)
}

// collect returns copies of the matching products ordered newest first, ties by id.
func (m *MockProductStore) collect(keep func(*domain.Product) bool) []*domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*domain.Product{}
	for _, p := range m.products {
		if keep(p) {
			out = append(out, copyProduct(p))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.Images = slices.Clone(p.Images)
	if cp.Images == nil {
		cp.Images = []string{}
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	return &cp
}
