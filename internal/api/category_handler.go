package api

import (
	"log/slog"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// CategoryHandler serves the category registry.
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger.With(slog.String("component", "category_handler")),
	}
}

// ListCategories handles GET /categories. Missing default categories are
// inserted first, so a fresh database always lists the seed set.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryService.EnsureSeeded(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return
	}

	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// CategoryCount handles GET /categories/{id}/count. Unknown ids count as zero.
func (h *CategoryHandler) CategoryCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.categoryService.Count(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to count products")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: count})
}
