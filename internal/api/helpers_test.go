package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/mocks"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

type testEnv struct {
	users      *mocks.MockUserStore
	products   *mocks.MockProductStore
	categories *mocks.MockCategoryStore

	userService     service.UserService
	productService  service.ProductService
	categoryService service.CategoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:      mocks.NewMockUserStore(),
		products:   mocks.NewMockProductStore(),
		categories: mocks.NewMockCategoryStore(),
	}
	env.userService = service.NewUserService(env.users, &mocks.MockPasswordHasher{}, testLogger())
	env.categoryService = service.NewCategoryService(env.categories, testLogger())
	ps, err := service.NewProductService(env.products, env.users, env.categories, &mocks.MockTransactor{}, testLogger())
	require.NoError(t, err)
	env.productService = ps
	require.NoError(t, env.categoryService.EnsureSeeded(context.Background()))
	return env
}

func (e *testEnv) addUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := e.userService.Register(context.Background(), service.RegisterParams{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "secret123",
		DisplayName: username,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) addProduct(t *testing.T, seller *domain.User, category string) *domain.Product {
	t.Helper()
	p, err := e.productService.Create(context.Background(), seller.ID, domain.ProductDetails{
		Title:       "Lamp",
		Description: "Reading lamp",
		Price:       12,
		Category:    category,
		Condition:   domain.ConditionGood,
	})
	require.NoError(t, err)
	return p
}

// newRequest builds a request with optional JSON body, chi URL params and an authenticated user.
func newRequest(t *testing.T, method, target string, body any, params map[string]string, userID uuid.UUID) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, shared.UserIDContextKey, userID)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
