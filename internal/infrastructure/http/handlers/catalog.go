package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/alchemorsel/composer/pkg/errors"
)

// CatalogHandlers serves catalog queries and maintenance
type CatalogHandlers struct {
	responder
	service inbound.CatalogService
}

// NewCatalogHandlers creates catalog handlers
func NewCatalogHandlers(service inbound.CatalogService, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		responder: newResponder(logger.Named("catalog-handlers")),
		service:   service,
	}
}

// ListIngredients handles GET /api/v1/ingredients?q=&category=&limit=
func (h *CatalogHandlers) ListIngredients(w http.ResponseWriter, r *http.Request) {
	query := inbound.IngredientQuery{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.writeError(w, r, errors.NewValidationError("limit must be a non-negative integer"))
			return
		}
		query.Limit = limit
	}

	ingredients, err := h.service.ListIngredients(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if ingredients == nil {
		ingredients = []ingredient.Ingredient{}
	}

	h.ok(w, http.StatusOK, ingredients, "Ingredients retrieved")
}

// ResolveProfile handles GET /api/v1/ingredients/{id}/profile?method=
func (h *CatalogHandlers) ResolveProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid ingredient ID"))
		return
	}

	method := r.URL.Query().Get("method")
	if method == "" {
		method = string(ingredient.MethodRaw)
	}

	profile, err := h.service.ResolveProfile(r.Context(), id, method)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.ok(w, http.StatusOK, profile, "Profile resolved")
}

// Refresh handles POST /api/v1/catalog/refresh
func (h *CatalogHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.RefreshCatalog(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Catalog refreshed", zap.Int("size", status.Size), zap.String("origin", status.Origin))
	h.ok(w, http.StatusOK, status, "Catalog refreshed")
}

// Status handles GET /api/v1/catalog
func (h *CatalogHandlers) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, status, "")
}
