package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Listing page sizes.
const (
	DefaultListLimit     = 20
	DefaultFeaturedLimit = 8
	MaxListLimit         = 100
)

// ListParams narrows a product listing.
type ListParams struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

// ProductService manages product listings.
type ProductService interface {
	// Create lists a new product for sellerID. Returns store.ErrUserNotFound when
	// the seller does not exist and ErrUnknownCategory for an unregistered category.
	Create(ctx context.Context, sellerID uuid.UUID, details domain.ProductDetails) (*domain.Product, error)

	// Get returns a product and counts the fetch as a view.
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// List returns available products, newest first. Limit is clamped to MaxListLimit.
	List(ctx context.Context, params ListParams) ([]*domain.Product, error)

	// Featured returns the newest available products.
	Featured(ctx context.Context, limit int) ([]*domain.Product, error)

	// ListBySeller returns every product of a seller, available or not.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error)

	// Update replaces the editable fields of a product owned by actingUserID.
	Update(ctx context.Context, id, actingUserID uuid.UUID, details domain.ProductDetails) (*domain.Product, error)

	// Delete removes a product owned by actingUserID.
	Delete(ctx context.Context, id, actingUserID uuid.UUID) error
}

// ProductServiceImpl implements ProductService
type ProductServiceImpl struct {
	productStore  store.ProductStore
	userStore     store.UserStore
	categoryStore store.CategoryStore
	tx            store.Transactor
	logger        *slog.Logger
}

// NewProductService creates a new ProductService.
// Returns an error if any of the required dependencies are nil.
func NewProductService(
	productStore store.ProductStore,
	userStore store.UserStore,
	categoryStore store.CategoryStore,
	tx store.Transactor,
	logger *slog.Logger,
) (ProductService, error) {
	if productStore == nil {
		return nil, fmt.Errorf("productStore cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if categoryStore == nil {
		return nil, fmt.Errorf("categoryStore cannot be nil")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductServiceImpl{
		productStore:  productStore,
		userStore:     userStore,
		categoryStore: categoryStore,
		tx:            tx,
		logger:        logger.With("component", "product_service"),
	}, nil
}

// Create implements ProductService.Create
func (s *ProductServiceImpl) Create(
	ctx context.Context,
	sellerID uuid.UUID,
	details domain.ProductDetails,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	seller, err := s.userStore.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seller: %w", err)
	}

	product, err := domain.NewProduct(seller, details)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		categories := s.categoryStore.WithTx(tx)
		if err := s.requireCategory(ctx, categories, product.Category); err != nil {
			return err
		}
		if err := s.productStore.WithTx(tx).Create(ctx, product); err != nil {
			return unknownCategoryOr(err)
		}
		return unknownCategoryOr(categories.AdjustCount(ctx, product.Category, 1))
	})
	if err != nil {
		if !errors.Is(err, ErrUnknownCategory) {
			log.Error("failed to create product", "error", err, "seller_id", sellerID)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Info("product created",
		"product_id", product.ID,
		"seller_id", sellerID,
		"category", product.Category)
	return product, nil
}

// Get implements ProductService.Get
func (s *ProductServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productStore.IncrementViews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// List implements ProductService.List
func (s *ProductServiceImpl) List(ctx context.Context, params ListParams) ([]*domain.Product, error) {
	filter := store.ProductFilter{
		Category: params.Category,
		Search:   params.Search,
		Skip:     max(params.Skip, 0),
		Limit:    ClampLimit(params.Limit, DefaultListLimit),
	}
	products, err := s.productStore.ListAvailable(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Featured implements ProductService.Featured
func (s *ProductServiceImpl) Featured(ctx context.Context, limit int) ([]*domain.Product, error) {
	return s.List(ctx, ListParams{Limit: ClampLimit(limit, DefaultFeaturedLimit)})
}

// ListBySeller implements ProductService.ListBySeller
func (s *ProductServiceImpl) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	products, err := s.productStore.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller products: %w", err)
	}
	return products, nil
}

// Update implements ProductService.Update
// A category change moves one unit of count from the old category to the new
// one inside the same transaction.
func (s *ProductServiceImpl) Update(
	ctx context.Context,
	id, actingUserID uuid.UUID,
	details domain.ProductDetails,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Product
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		products := s.productStore.WithTx(tx)
		categories := s.categoryStore.WithTx(tx)

		product, err := s.loadOwned(ctx, products, id, actingUserID)
		if err != nil {
			return err
		}

		oldCategory := product.Category
		if err := product.Replace(details); err != nil {
			return err
		}
		moved := product.Category != oldCategory
		if moved {
			if err := s.requireCategory(ctx, categories, product.Category); err != nil {
				return err
			}
		}

		if err := products.Update(ctx, product); err != nil {
			return unknownCategoryOr(err)
		}
		if moved {
			if err := categories.AdjustCount(ctx, oldCategory, -1); err != nil {
				return err
			}
			if err := categories.AdjustCount(ctx, product.Category, 1); err != nil {
				return unknownCategoryOr(err)
			}
			log.Debug("product moved between categories",
				"product_id", id,
				"from", oldCategory,
				"to", product.Category)
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Info("product updated", "product_id", id, "seller_id", actingUserID)
	return updated, nil
}

// Delete implements ProductService.Delete
func (s *ProductServiceImpl) Delete(ctx context.Context, id, actingUserID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		products := s.productStore.WithTx(tx)

		product, err := s.loadOwned(ctx, products, id, actingUserID)
		if err != nil {
			return err
		}
		if err := products.Delete(ctx, id); err != nil {
			return err
		}
		return s.categoryStore.WithTx(tx).AdjustCount(ctx, product.Category, -1)
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	log.Info("product deleted", "product_id", id, "seller_id", actingUserID)
	return nil
}

// loadOwned locks the product row and checks that actingUserID is its seller.
func (s *ProductServiceImpl) loadOwned(
	ctx context.Context,
	products store.ProductStore,
	id, actingUserID uuid.UUID,
) (*domain.Product, error) {
	product, err := products.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.OwnedBy(actingUserID) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("product modification by non-owner",
			"product_id", id,
			"seller_id", product.SellerID,
			"acting_user_id", actingUserID)
		return nil, ErrNotOwned
	}
	return product, nil
}

func (s *ProductServiceImpl) requireCategory(ctx context.Context, categories store.CategoryStore, id string) error {
	if id == domain.AllCategoriesID {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	if _, err := categories.Get(ctx, id); err != nil {
		return unknownCategoryOr(err)
	}
	return nil
}

// unknownCategoryOr converts a missing-category store error into ErrUnknownCategory.
func unknownCategoryOr(err error) error {
	if errors.Is(err, store.ErrCategoryNotFound) {
		return fmt.Errorf("%w: %v", ErrUnknownCategory, err)
	}
	return err
}

// ClampLimit applies def to non-positive limits and caps the result at MaxListLimit.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	return min(limit, MaxListLimit)
}
