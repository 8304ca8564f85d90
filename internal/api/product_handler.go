package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// ProductHandler handles product listing requests.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProductHandler")
	}
	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// respondProducts always writes a JSON array, never null.
func respondProducts(w http.ResponseWriter, r *http.Request, products []*domain.Product) {
	if products == nil {
		products = []*domain.Product{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// ListProducts handles GET /products?skip=&limit=&category=&search=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultListLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	q := r.URL.Query()
	products, err := h.productService.List(r.Context(), service.ListParams{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("search")),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list products")
		return
	}

	respondProducts(w, r, products)
}

// FeaturedProducts handles GET /products/featured?limit=
func (h *ProductHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", service.DefaultFeaturedLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	products, err := h.productService.Featured(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list featured products")
		return
	}

	respondProducts(w, r, products)
}

// GetProduct handles GET /products/{id}. Each successful fetch counts as a view.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := getPathUUID(r, "id", store.ErrProductNotFound)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.Get(r.Context(), productID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sellerID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req ProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.Create(r.Context(), sellerID, req.details())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create product")
		return
	}

	log.Debug("product created via API", slog.String("product_id", product.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/{id}. The body fully replaces the editable fields.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := handleUserIDAndPathUUID(w, r, "id", store.ErrProductNotFound, h.logger)
	if !ok {
		return
	}

	var req ProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.Update(r.Context(), productID, userID, req.details())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := handleUserIDAndPathUUID(w, r, "id", store.ErrProductNotFound, h.logger)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), productID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

// ListUserProducts handles GET /users/{id}/products
func (h *ProductHandler) ListUserProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, err := getPathUUID(r, "id", store.ErrUserNotFound)
	if err != nil {
		// A malformed seller id owns no listings.
		respondProducts(w, r, nil)
		return
	}

	products, err := h.productService.ListBySeller(r.Context(), sellerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list user products")
		return
	}

	respondProducts(w, r, products)
}
