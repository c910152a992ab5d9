package handlers

import (
	"net/http"

	"quotes-ai/internal/contextutil"
)

// StatsHandler reports on the vector collection backing the corpus.
type StatsHandler struct {
	engine QueryService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(engine QueryService) *StatsHandler {
	return &StatsHandler{engine: engine}
}

// ServeHTTP returns collection statistics.
//
// swagger:route GET /api/v1/stats collectionStats
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.engine.Stats(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "stats failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		return
	}

	writeJSON(w, ctx, http.StatusOK, stats)
}
