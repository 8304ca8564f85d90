package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productPayload(category string) map[string]any {
	return map[string]any{
		"title":       "Bike",
		"description": "City bike",
		"price":       50,
		"category":    category,
		"images":      []string{"https://img.example.com/1.jpg"},
		"condition":   "good",
	}
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(map[string]any)
		wantStatus int
		wantField  string
	}{
		{name: "valid", mutate: func(map[string]any) {}, wantStatus: http.StatusCreated},
		{name: "zero price", mutate: func(p map[string]any) { p["price"] = 0 }, wantStatus: http.StatusBadRequest, wantField: "price"},
		{name: "negative price", mutate: func(p map[string]any) { p["price"] = -3 }, wantStatus: http.StatusBadRequest, wantField: "price"},
		{name: "price beyond column range", mutate: func(p map[string]any) { p["price"] = 1e12 }, wantStatus: http.StatusBadRequest, wantField: "price"},
		{name: "sub-cent price", mutate: func(p map[string]any) { p["price"] = 0.001 }, wantStatus: http.StatusBadRequest, wantField: "price"},
		{name: "three decimal price", mutate: func(p map[string]any) { p["price"] = 12.345 }, wantStatus: http.StatusBadRequest, wantField: "price"},
		{name: "maximum price", mutate: func(p map[string]any) { p["price"] = 9999999999.99 }, wantStatus: http.StatusCreated},
		{name: "bad condition", mutate: func(p map[string]any) { p["condition"] = "mint" }, wantStatus: http.StatusBadRequest, wantField: "condition"},
		{name: "missing title", mutate: func(p map[string]any) { delete(p, "title") }, wantStatus: http.StatusBadRequest, wantField: "title"},
		{name: "unknown category", mutate: func(p map[string]any) { p["category"] = "boats" }, wantStatus: http.StatusBadRequest, wantField: "category"},
		{name: "aggregate category", mutate: func(p map[string]any) { p["category"] = "all" }, wantStatus: http.StatusBadRequest, wantField: "category"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			seller := env.addUser(t, "seller")
			handler := NewProductHandler(env.productService, testLogger())

			payload := productPayload("sports")
			tc.mutate(payload)

			rec := httptest.NewRecorder()
			handler.CreateProduct(rec, newRequest(t, http.MethodPost, "/products", payload, nil, seller.ID))

			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			if tc.wantStatus != http.StatusCreated {
				assert.Equal(t, tc.wantField, decodeError(t, rec).Field)
				assert.Zero(t, env.products.Len())
				return
			}

			var product domain.Product
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
			assert.Equal(t, seller.ID, product.SellerID)
			assert.Equal(t, "seller", product.SellerName)
			assert.True(t, product.IsAvailable)
			assert.Zero(t, product.Views)
		})
	}
}

func TestCreateProductRequiresAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	handler := NewProductHandler(env.productService, testLogger())

	rec := httptest.NewRecorder()
	handler.CreateProduct(rec, newRequest(t, http.MethodPost, "/products", productPayload("sports"), nil, uuid.Nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProductSellerVanished(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	handler := NewProductHandler(env.productService, testLogger())

	rec := httptest.NewRecorder()
	handler.CreateProduct(rec, newRequest(t, http.MethodPost, "/products", productPayload("sports"), nil, uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeError(t, rec).Error)
}

func TestGetProduct(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seller := env.addUser(t, "seller")
	p := env.addProduct(t, seller, "books")
	handler := NewProductHandler(env.productService, testLogger())

	get := func(id string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.GetProduct(rec, newRequest(t, http.MethodGet, "/products/"+id, nil, map[string]string{"id": id}, uuid.Nil))
		return rec
	}

	get(p.ID.String())
	rec := get(p.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 2, got.Views)

	assert.Equal(t, http.StatusNotFound, get(uuid.NewString()).Code)

	// Ids are UUIDs, so a malformed one names no product.
	rec = get("not-a-uuid")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Product not found", body.Error)
	assert.Empty(t, body.Field)
}

func TestListProducts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seller := env.addUser(t, "seller")
	env.addProduct(t, seller, "books")
	env.addProduct(t, seller, "electronics")
	handler := NewProductHandler(env.productService, testLogger())

	list := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ListProducts(rec, newRequest(t, http.MethodGet, target, nil, nil, uuid.Nil))
		return rec
	}

	rec := list("/products?category=electronics")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "electronics", products[0].Category)

	rec = list("/products?category=boats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = list("/products?limit=500&skip=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, env.products.LastFilter.Limit)

	assert.Equal(t, http.StatusBadRequest, list("/products?skip=-1").Code)
	assert.Equal(t, http.StatusBadRequest, list("/products?limit=ten").Code)
}

func TestListProductsStoreFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.products.ListAvailableFn = func(context.Context, store.ProductFilter) ([]*domain.Product, error) {
		return nil, errors.New("connection reset by peer")
	}
	handler := NewProductHandler(env.productService, testLogger())

	rec := httptest.NewRecorder()
	handler.ListProducts(rec, newRequest(t, http.MethodGet, "/products", nil, nil, uuid.Nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to list products", decodeError(t, rec).Error)
}

func TestFeaturedProducts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seller := env.addUser(t, "seller")
	env.addProduct(t, seller, "books")
	handler := NewProductHandler(env.productService, testLogger())

	rec := httptest.NewRecorder()
	handler.FeaturedProducts(rec, newRequest(t, http.MethodGet, "/products/featured", nil, nil, uuid.Nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, env.products.LastFilter.Limit)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	owner := env.addUser(t, "owner")
	other := env.addUser(t, "other")
	p := env.addProduct(t, owner, "books")
	handler := NewProductHandler(env.productService, testLogger())
	params := map[string]string{"id": p.ID.String()}

	// Non-owner update
	rec := httptest.NewRecorder()
	handler.UpdateProduct(rec, newRequest(t, http.MethodPut, "/products/"+p.ID.String(), productPayload("sports"), params, other.ID))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Owner update
	rec = httptest.NewRecorder()
	handler.UpdateProduct(rec, newRequest(t, http.MethodPut, "/products/"+p.ID.String(), productPayload("sports"), params, owner.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Bike", updated.Title)
	assert.Equal(t, "sports", updated.Category)

	// Non-owner delete
	rec = httptest.NewRecorder()
	handler.DeleteProduct(rec, newRequest(t, http.MethodDelete, "/products/"+p.ID.String(), nil, params, other.ID))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, env.products.Len())

	// Owner delete
	rec = httptest.NewRecorder()
	handler.DeleteProduct(rec, newRequest(t, http.MethodDelete, "/products/"+p.ID.String(), nil, params, owner.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())

	// Second delete
	rec = httptest.NewRecorder()
	handler.DeleteProduct(rec, newRequest(t, http.MethodDelete, "/products/"+p.ID.String(), nil, params, owner.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUserProducts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seller := env.addUser(t, "seller")
	env.addProduct(t, seller, "books")
	handler := NewProductHandler(env.productService, testLogger())

	rec := httptest.NewRecorder()
	id := seller.ID.String()
	handler.ListUserProducts(rec, newRequest(t, http.MethodGet, "/users/"+id+"/products", nil, map[string]string{"id": id}, uuid.Nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
}

func TestMalformedProductIDIsNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	owner := env.addUser(t, "owner")
	handler := NewProductHandler(env.productService, testLogger())
	params := map[string]string{"id": "abc"}

	rec := httptest.NewRecorder()
	handler.UpdateProduct(rec, newRequest(t, http.MethodPut, "/products/abc", productPayload("sports"), params, owner.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.DeleteProduct(rec, newRequest(t, http.MethodDelete, "/products/abc", nil, params, owner.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ListUserProducts(rec, newRequest(t, http.MethodGet, "/users/abc/products", nil, params, uuid.Nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
