package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/jackc/pgx/v5"
)

// MockCategoryStore implements store.CategoryStore in memory.
//
// Reconcile recomputes counters from Products when it is set and is a no-op otherwise.
type MockCategoryStore struct {
	SeedFn        func(ctx context.Context, categories []*domain.Category) (int, error)
	CreateFn      func(ctx context.Context, category *domain.Category) error
	GetFn         func(ctx context.Context, id string) (*domain.Category, error)
	ListFn        func(ctx context.Context) ([]*domain.Category, error)
	AdjustCountFn func(ctx context.Context, id string, delta int) error
	TotalCountFn  func(ctx context.Context) (int64, error)
	ReconcileFn   func(ctx context.Context) (int, error)

	// Products is consulted by Reconcile.
	Products *MockProductStore

	mu         sync.Mutex
	categories map[string]*domain.Category
}

// NewMockCategoryStore creates an empty in-memory category store.
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{categories: make(map[string]*domain.Category)}
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// WithTx returns the same store; the mock has no transactions.
func (m *MockCategoryStore) WithTx(pgx.Tx) store.CategoryStore {
	return m
}

// Seed implements the CategoryStore interface
func (m *MockCategoryStore) Seed(ctx context.Context, categories []*domain.Category) (int, error) {
	if m.SeedFn != nil {
		return m.SeedFn(ctx, categories)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for _, c := range categories {
		if m.conflicts(c) {
			continue
		}
		cp := *c
		cp.ProductCount = 0
		m.categories[c.ID] = &cp
		inserted++
	}
	return inserted, nil
}

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(category) {
		return store.ErrCategoryExists
	}
	cp := *category
	cp.ProductCount = 0
	m.categories[category.ID] = &cp
	return nil
}

// Get implements the CategoryStore interface
func (m *MockCategoryStore) Get(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

// List implements the CategoryStore interface
func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *domain.Category) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// AdjustCount implements the CategoryStore interface
func (m *MockCategoryStore) AdjustCount(ctx context.Context, id string, delta int) error {
	if m.AdjustCountFn != nil {
		return m.AdjustCountFn(ctx, id, delta)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return store.ErrCategoryNotFound
	}
	c.ProductCount = max(c.ProductCount+int64(delta), 0)
	return nil
}

// TotalCount implements the CategoryStore interface
func (m *MockCategoryStore) TotalCount(ctx context.Context) (int64, error) {
	if m.TotalCountFn != nil {
		return m.TotalCountFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for id, c := range m.categories {
		if id != domain.AllCategoriesID {
			total += c.ProductCount
		}
	}
	return total, nil
}

// Reconcile implements the CategoryStore interface
func (m *MockCategoryStore) Reconcile(ctx context.Context) (int, error) {
	if m.ReconcileFn != nil {
		return m.ReconcileFn(ctx)
	}
	if m.Products == nil {
		return 0, nil
	}

	available, err := m.Products.ListAvailable(ctx, store.ProductFilter{})
	if err != nil {
		return 0, err
	}
	counts := make(map[string]int64)
	for _, p := range available {
		counts[p.Category]++
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	changed := 0
	for id, c := range m.categories {
		if id == domain.AllCategoriesID {
			continue
		}
		if c.ProductCount != counts[id] {
			c.ProductCount = counts[id]
			changed++
		}
	}
	return changed, nil
}

// SetCount overwrites a stored counter, simulating drift.
func (m *MockCategoryStore) SetCount(id string, count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[id]; ok {
		c.ProductCount = count
	}
}

func (m *MockCategoryStore) conflicts(category *domain.Category) bool {
	for id, c := range m.categories {
		if id == category.ID || c.Name == category.Name {
			return true
		}
	}
	return false
}
