package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/mocks"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// marketplace bundles the in-memory stores and the services built on them.
type marketplace struct {
	users      *mocks.MockUserStore
	products   *mocks.MockProductStore
	categories *mocks.MockCategoryStore
	tx         *mocks.MockTransactor

	userService     service.UserService
	productService  service.ProductService
	categoryService service.CategoryService
}

func newMarketplace(t *testing.T) *marketplace {
	t.Helper()

	m := &marketplace{
		users:      mocks.NewMockUserStore(),
		products:   mocks.NewMockProductStore(),
		categories: mocks.NewMockCategoryStore(),
		tx:         &mocks.MockTransactor{},
	}
	m.categories.Products = m.products

	m.userService = service.NewUserService(m.users, &mocks.MockPasswordHasher{}, testLogger())
	m.categoryService = service.NewCategoryService(m.categories, testLogger())
	ps, err := service.NewProductService(m.products, m.users, m.categories, m.tx, testLogger())
	require.NoError(t, err)
	m.productService = ps

	require.NoError(t, m.categoryService.EnsureSeeded(context.Background()))
	return m
}

func (m *marketplace) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := m.userService.Register(context.Background(), service.RegisterParams{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "secret123",
		DisplayName: "User " + username,
		Profile:     domain.UserProfile{Phone: strPtr("555-0100")},
	})
	require.NoError(t, err)
	return user
}

func (m *marketplace) count(t *testing.T, category string) int64 {
	t.Helper()
	n, err := m.categoryService.Count(context.Background(), category)
	require.NoError(t, err)
	return n
}

func details(category string) domain.ProductDetails {
	return domain.ProductDetails{
		Title:       "Vintage jacket",
		Description: "Warm wool jacket, barely worn",
		Price:       45.5,
		Category:    category,
		Condition:   domain.ConditionLikeNew,
	}
}
