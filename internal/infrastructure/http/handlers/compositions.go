package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/alchemorsel/composer/pkg/errors"
)

// CompositionHandlers serves session compositions
type CompositionHandlers struct {
	responder
	service inbound.CompositionService
}

// NewCompositionHandlers creates composition handlers
func NewCompositionHandlers(service inbound.CompositionService, logger *zap.Logger) *CompositionHandlers {
	return &CompositionHandlers{
		responder: newResponder(logger.Named("composition-handlers")),
		service:   service,
	}
}

type createCompositionRequest struct {
	Name string `json:"name" validate:"max=200"`
}

type addIngredientRequest struct {
	Ingredient    string `json:"ingredient" validate:"required,max=200"`
	Weight        *int   `json:"weight" validate:"omitempty,min=0,max=100000"`
	CookingMethod string `json:"cooking_method" validate:"omitempty,max=50"`
}

type cookingMethodRequest struct {
	CookingMethod string `json:"cooking_method" validate:"required,max=50"`
}

type weightRequest struct {
	Weight *int `json:"weight" validate:"required,min=0,max=100000"`
}

// Create handles POST /api/v1/compositions. The body is optional.
func (h *CompositionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createCompositionRequest
	if r.ContentLength != 0 {
		if err := h.decode(r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	dto, err := h.service.CreateComposition(r.Context(), inbound.CreateCompositionCommand{Name: req.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/compositions/"+dto.ID.String())
	h.ok(w, http.StatusCreated, dto, "Composition created")
}

// Get handles GET /api/v1/compositions/{id}
func (h *CompositionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.GetComposition(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, dto, "")
}

// Delete handles DELETE /api/v1/compositions/{id}
func (h *CompositionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteComposition(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, nil, "Composition deleted")
}

// AddIngredient handles POST /api/v1/compositions/{id}/ingredients
func (h *CompositionHandlers) AddIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	var req addIngredientRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.service.AddIngredient(r.Context(), inbound.AddIngredientCommand{
		CompositionID: id,
		Ingredient:    req.Ingredient,
		Weight:        req.Weight,
		CookingMethod: req.CookingMethod,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, dto, "Ingredient added")
}

// RemoveIngredient handles DELETE /api/v1/compositions/{id}/ingredients/{ingredientID}
func (h *CompositionHandlers) RemoveIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}
	ingredientID, ok := h.ingredientID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.RemoveIngredient(r.Context(), id, ingredientID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, dto, "Ingredient removed")
}

// SetCookingMethod handles PUT /api/v1/compositions/{id}/ingredients/{ingredientID}/cooking-method
func (h *CompositionHandlers) SetCookingMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}
	ingredientID, ok := h.ingredientID(w, r)
	if !ok {
		return
	}

	var req cookingMethodRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.service.SetCookingMethod(r.Context(), inbound.SetCookingMethodCommand{
		CompositionID: id,
		IngredientID:  ingredientID,
		CookingMethod: req.CookingMethod,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, dto, "Cooking method updated")
}

// SetWeight handles PUT /api/v1/compositions/{id}/ingredients/{ingredientID}/weight.
// A weight of zero restores the ingredient's role default.
func (h *CompositionHandlers) SetWeight(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}
	ingredientID, ok := h.ingredientID(w, r)
	if !ok {
		return
	}

	var req weightRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.service.SetWeight(r.Context(), inbound.SetWeightCommand{
		CompositionID: id,
		IngredientID:  ingredientID,
		Weight:        *req.Weight,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, dto, "Weight updated")
}

// Profile handles GET /api/v1/compositions/{id}/profile
func (h *CompositionHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.ComputeProfile(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, profile, "")
}

// Analysis handles GET /api/v1/compositions/{id}/analysis
func (h *CompositionHandlers) Analysis(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	result, err := h.service.AnalyzeMouthfeel(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if result.Retryable {
		w.Header().Set("Retry-After", "5")
		h.writeJSON(w, http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Data:    result,
			Message: catalogUnavailableMessage,
		})
		return
	}
	h.ok(w, http.StatusOK, result, "Composition analyzed")
}

func (h *CompositionHandlers) compositionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid composition ID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *CompositionHandlers) ingredientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "ingredientID"))
	if err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid ingredient ID"))
		return uuid.Nil, false
	}
	return id, true
}
