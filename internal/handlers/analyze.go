package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"quotes-ai/internal/contextutil"
)

// AnalyzeHandler returns the analysis of a single quote.
type AnalyzeHandler struct {
	engine QueryService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(engine QueryService) *AnalyzeHandler {
	return &AnalyzeHandler{engine: engine}
}

// ServeHTTP analyzes the quote identified by the id path parameter.
//
// swagger:route GET /api/v1/quotes/{id}/analysis analyzeQuote
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		logger.WarnContext(ctx, "invalid quote id", "raw", chi.URLParam(r, "id"))
		writeError(w, http.StatusBadRequest, "Invalid quote id")
		return
	}

	analysis, err := h.engine.AnalyzeQuote(ctx, id)
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to analyze quote")
		return
	}

	writeJSON(w, ctx, http.StatusOK, analysis)
}
