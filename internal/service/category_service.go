package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// CreateCategoryParams carries the fields of a new category.
type CreateCategoryParams struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// CategoryService is the category registry. It owns the per-category product
// counters; other services change them only through AdjustCount.
type CategoryService interface {
	// EnsureSeeded inserts any missing default categories. Safe to call concurrently.
	EnsureSeeded(ctx context.Context) error

	// List returns every category sorted by name.
	List(ctx context.Context) ([]*domain.Category, error)

	// Count returns the number of available products in a category, or in
	// every category for domain.AllCategoriesID.
	Count(ctx context.Context, categoryID string) (int64, error)

	// AdjustCount atomically moves a category counter by delta.
	AdjustCount(ctx context.Context, categoryID string, delta int) error

	// Exists reports whether a concrete (non-aggregate) category id is registered.
	Exists(ctx context.Context, categoryID string) (bool, error)

	// Create registers a new category with a zero count.
	Create(ctx context.Context, params CreateCategoryParams) (*domain.Category, error)

	// Reconcile recomputes every counter from the stored products.
	Reconcile(ctx context.Context) (int, error)
}

// CategoryServiceImpl implements CategoryService
type CategoryServiceImpl struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryStore store.CategoryStore, logger *slog.Logger) CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryServiceImpl{
		categoryStore: categoryStore,
		logger:        logger.With("component", "category_service"),
	}
}

// EnsureSeeded implements CategoryService.EnsureSeeded
func (s *CategoryServiceImpl) EnsureSeeded(ctx context.Context) error {
	inserted, err := s.categoryStore.Seed(ctx, domain.DefaultCategories())
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if inserted > 0 {
		logger.FromContextOrDefault(ctx, s.logger).Info("default categories inserted", "count", inserted)
	}
	return nil
}

// List implements CategoryService.List
func (s *CategoryServiceImpl) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Count implements CategoryService.Count
// Counters are maintained in the same transaction as product writes, so they
// are read directly. Unknown ids count as zero.
func (s *CategoryServiceImpl) Count(ctx context.Context, categoryID string) (int64, error) {
	if categoryID == domain.AllCategoriesID {
		total, err := s.categoryStore.TotalCount(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count products: %w", err)
		}
		return total, nil
	}

	category, err := s.categoryStore.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return category.ProductCount, nil
}

// AdjustCount implements CategoryService.AdjustCount
func (s *CategoryServiceImpl) AdjustCount(ctx context.Context, categoryID string, delta int) error {
	if categoryID == domain.AllCategoriesID {
		return fmt.Errorf("%w: the aggregate category has no counter", ErrUnknownCategory)
	}
	if err := s.categoryStore.AdjustCount(ctx, categoryID, delta); err != nil {
		return fmt.Errorf("failed to adjust count for %q: %w", categoryID, err)
	}
	return nil
}

// Exists implements CategoryService.Exists
func (s *CategoryServiceImpl) Exists(ctx context.Context, categoryID string) (bool, error) {
	if categoryID == domain.AllCategoriesID {
		return false, nil
	}
	_, err := s.categoryStore.Get(ctx, categoryID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrCategoryNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to look up category: %w", err)
	}
}

// Create implements CategoryService.Create
func (s *CategoryServiceImpl) Create(ctx context.Context, params CreateCategoryParams) (*domain.Category, error) {
	category, err := domain.NewCategory(params.ID, params.Name, params.Icon, params.Color)
	if err != nil {
		return nil, err
	}
	if err := s.categoryStore.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("category created", "category_id", category.ID)
	return category, nil
}

// Reconcile implements CategoryService.Reconcile
func (s *CategoryServiceImpl) Reconcile(ctx context.Context) (int, error) {
	changed, err := s.categoryStore.Reconcile(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile category counts: %w", err)
	}
	return changed, nil
}
