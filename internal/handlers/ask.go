package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"quotes-ai/internal/contextutil"
	"quotes-ai/internal/rag"
	"quotes-ai/internal/service"
)

// QueryService is the part of the query engine the HTTP layer consumes.
type QueryService interface {
	ProcessQuery(ctx context.Context, question string, topK int, mode rag.AnalysisMode) (rag.QueryResponse, error)
	SearchQuotes(ctx context.Context, question string, topK int) ([]rag.ScoredDocument, error)
	Stats(ctx context.Context) (rag.CollectionStats, error)
	AnalyzeQuote(ctx context.Context, id int) (rag.QuoteAnalysis, error)
	CompareQuotes(ctx context.Context, ids []int) (rag.ComparisonResult, error)
}

// AskHandler handles question answering requests.
type AskHandler struct {
	engine QueryService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine QueryService) *AskHandler {
	return &AskHandler{engine: engine}
}

// AskRequest represents the HTTP request payload for questions.
//
// swagger:model AskRequest
type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
	Mode     string `json:"mode,omitempty"`
}

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP answers a question from the quote corpus.
//
// swagger:route POST /api/v1/ask askQuestion
//
// Ask a question about historical quotes. The response carries the generated
// answer along with the ranked source quotes; degraded retrieval or
// generation is reported in the `error` field of a 200 response, not as an
// HTTP failure.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if req.TopK < 1 {
		req.TopK = 3
	}
	if req.TopK > 20 {
		req.TopK = 20
	}

	resp, err := h.engine.ProcessQuery(ctx, req.Question, req.TopK, rag.ParseAnalysisMode(req.Mode))
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to process query")
		return
	}

	writeJSON(w, ctx, http.StatusOK, resp)
}

// handleEngineError maps engine errors to HTTP status codes.
func handleEngineError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "engine error", "error", err)

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInsufficientContext):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, ctx context.Context, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
