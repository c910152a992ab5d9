package handlers

import (
	"encoding/json"
	"net/http"

	"quotes-ai/internal/contextutil"
)

// CompareHandler compares two or three quotes by ID.
type CompareHandler struct {
	engine QueryService
}

// NewCompareHandler creates a new CompareHandler.
func NewCompareHandler(engine QueryService) *CompareHandler {
	return &CompareHandler{engine: engine}
}

// CompareRequest represents the HTTP request payload for comparisons.
//
// swagger:model CompareRequest
type CompareRequest struct {
	QuoteIDs []int `json:"quote_ids"`
}

// ServeHTTP compares the requested quotes.
//
// swagger:route POST /api/v1/compare compareQuotes
func (h *CompareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.engine.CompareQuotes(ctx, req.QuoteIDs)
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to compare quotes")
		return
	}

	writeJSON(w, ctx, http.StatusOK, result)
}
