package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/ports/inbound"
)

const catalogUnavailableMessage = "Ingredient catalog is unavailable, retry later"

// AnalysisHandlers serves the stateless analyses of ingredient name lists
type AnalysisHandlers struct {
	responder
	service inbound.CompositionService
}

// NewAnalysisHandlers creates analysis handlers
func NewAnalysisHandlers(service inbound.CompositionService, logger *zap.Logger) *AnalysisHandlers {
	return &AnalysisHandlers{
		responder: newResponder(logger.Named("analysis-handlers")),
		service:   service,
	}
}

type ingredientsRequest struct {
	Ingredients []string `json:"ingredients" validate:"max=100,dive,max=200"`
}

// Analyze handles POST /api/v1/analysis
func (h *AnalysisHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req ingredientsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.service.AnalyzeComposition(r.Context(), req.Ingredients)
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

// Suggestions handles POST /api/v1/suggestions
func (h *AnalysisHandlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req ingredientsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.service.GetSuggestions(r.Context(), req.Ingredients)
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

	h.ok(w, http.StatusOK, result, "Suggestions retrieved")
}
