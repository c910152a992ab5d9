package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"quotes-ai/internal/contextutil"
	"quotes-ai/internal/rag"
)

// SearchHandler runs retrieval and ranking without answer generation.
type SearchHandler struct {
	engine QueryService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine QueryService) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// SearchResponse represents the search results payload.
//
// swagger:model SearchResponse
type SearchResponse struct {
	Results []rag.ScoredDocument `json:"results"`
	Count   int                  `json:"count"`
}

// ServeHTTP searches the corpus. The question comes from the `q` query
// parameter, the result count from `top_k`.
//
// swagger:route GET /api/v1/search searchQuotes
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(r.URL.Query().Get("q"))
	if question == "" {
		logger.WarnContext(ctx, "empty search query")
		writeError(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	topK := 3
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 20 {
			writeError(w, http.StatusBadRequest, "top_k must be between 1 and 20")
			return
		}
		topK = parsed
	}

	results, err := h.engine.SearchQuotes(ctx, question, topK)
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to search quotes")
		return
	}

	writeJSON(w, ctx, http.StatusOK, SearchResponse{Results: results, Count: len(results)})
}
