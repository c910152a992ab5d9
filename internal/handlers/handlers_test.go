package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"quotes-ai/internal/rag"
	"quotes-ai/internal/service"
	"quotes-ai/internal/vectorstore/mocks"
)

type stubQueryService struct {
	processResp rag.QueryResponse
	processErr  error
	searchResp  []rag.ScoredDocument
	searchErr   error
	stats       rag.CollectionStats
	statsErr    error
	analysis    rag.QuoteAnalysis
	analysisErr error
	comparison  rag.ComparisonResult
	compareErr  error

	gotQuestion string
	gotTopK     int
	gotMode     rag.AnalysisMode
	gotID       int
	gotIDs      []int
}

func (s *stubQueryService) ProcessQuery(_ context.Context, question string, topK int, mode rag.AnalysisMode) (rag.QueryResponse, error) {
	s.gotQuestion, s.gotTopK, s.gotMode = question, topK, mode
	return s.processResp, s.processErr
}

func (s *stubQueryService) SearchQuotes(_ context.Context, question string, topK int) ([]rag.ScoredDocument, error) {
	s.gotQuestion, s.gotTopK = question, topK
	return s.searchResp, s.searchErr
}

func (s *stubQueryService) Stats(_ context.Context) (rag.CollectionStats, error) {
	return s.stats, s.statsErr
}

func (s *stubQueryService) AnalyzeQuote(_ context.Context, id int) (rag.QuoteAnalysis, error) {
	s.gotID = id
	return s.analysis, s.analysisErr
}

func (s *stubQueryService) CompareQuotes(_ context.Context, ids []int) (rag.ComparisonResult, error) {
	s.gotIDs = ids
	return s.comparison, s.compareErr
}

func TestAskHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *stubQueryService
		wantStatus int
		wantTopK   int
		wantMode   rag.AnalysisMode
	}{
		{
			name:       "successful query",
			body:       `{"question":"Who said fear itself?","top_k":5,"mode":"comprehensive"}`,
			svc:        &stubQueryService{processResp: rag.QueryResponse{Answer: "FDR"}},
			wantStatus: http.StatusOK,
			wantTopK:   5,
			wantMode:   rag.ModeComprehensive,
		},
		{
			name:       "defaults applied",
			body:       `{"question":"Who said fear itself?"}`,
			svc:        &stubQueryService{processResp: rag.QueryResponse{Answer: "FDR"}},
			wantStatus: http.StatusOK,
			wantTopK:   3,
			wantMode:   rag.ModeStandard,
		},
		{
			name:       "top_k capped",
			body:       `{"question":"q","top_k":100}`,
			svc:        &stubQueryService{},
			wantStatus: http.StatusOK,
			wantTopK:   20,
			wantMode:   rag.ModeStandard,
		},
		{
			name:       "empty question",
			body:       `{"question":"  "}`,
			svc:        &stubQueryService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"question":`,
			svc:        &stubQueryService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid input from engine",
			body:       `{"question":"q"}`,
			svc:        &stubQueryService{processErr: fmt.Errorf("bad: %w", service.ErrInvalidInput)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "insufficient context",
			body:       `{"question":"compare","mode":"comparative"}`,
			svc:        &stubQueryService{processErr: fmt.Errorf("need 2: %w", service.ErrInsufficientContext)},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unexpected engine error",
			body:       `{"question":"q"}`,
			svc:        &stubQueryService{processErr: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			NewAskHandler(tt.svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if tt.svc.gotTopK != tt.wantTopK {
					t.Errorf("topK = %d, want %d", tt.svc.gotTopK, tt.wantTopK)
				}
				if tt.svc.gotMode != tt.wantMode {
					t.Errorf("mode = %q, want %q", tt.svc.gotMode, tt.wantMode)
				}
			}
		})
	}
}

func TestAskHandler_DegradedResponseStaysOK(t *testing.T) {
	svc := &stubQueryService{processResp: rag.QueryResponse{
		Answer:   "fallback",
		Degraded: true,
		Err:      "embedding service unavailable",
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"q"}`))
	rec := httptest.NewRecorder()
	NewAskHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a degraded response", rec.Code)
	}
	var resp rag.QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Degraded || resp.Err == "" {
		t.Errorf("degradation not surfaced: %+v", resp)
	}
}

func TestSearchHandler(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		svc        *stubQueryService
		wantStatus int
	}{
		{"ok", "/api/v1/search?q=fear&top_k=2", &stubQueryService{}, http.StatusOK},
		{"missing q", "/api/v1/search", &stubQueryService{}, http.StatusBadRequest},
		{"top_k out of range", "/api/v1/search?q=fear&top_k=0", &stubQueryService{}, http.StatusBadRequest},
		{"top_k not a number", "/api/v1/search?q=fear&top_k=lots", &stubQueryService{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			NewSearchHandler(tt.svc).ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestStatsHandler(t *testing.T) {
	svc := &stubQueryService{stats: rag.CollectionStats{CollectionName: "historical_quotes", VectorsCount: 12, Status: "green"}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	NewStatsHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats rag.CollectionStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if stats.VectorsCount != 12 {
		t.Errorf("VectorsCount = %d, want 12", stats.VectorsCount)
	}
}

func TestStatsHandler_StoreDown(t *testing.T) {
	svc := &stubQueryService{statsErr: errors.New("qdrant unreachable")}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	NewStatsHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestAnalyzeHandler(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		svc        *stubQueryService
		wantStatus int
	}{
		{"ok", "7", &stubQueryService{analysis: rag.QuoteAnalysis{QuoteID: 7, Origin: "dataset"}}, http.StatusOK},
		{"not a number", "seven", &stubQueryService{}, http.StatusBadRequest},
		{"zero id", "0", &stubQueryService{}, http.StatusBadRequest},
		{"unknown quote", "99", &stubQueryService{analysisErr: fmt.Errorf("quote 99: %w", service.ErrNotFound)}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Get("/api/v1/quotes/{id}/analysis", NewAnalyzeHandler(tt.svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+tt.id+"/analysis", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && tt.svc.gotID != 7 {
				t.Errorf("engine got id %d, want 7", tt.svc.gotID)
			}
		})
	}
}

func TestCompareHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *stubQueryService
		wantStatus int
	}{
		{"ok", `{"quote_ids":[1,2]}`, &stubQueryService{comparison: rag.ComparisonResult{Analysis: "shared themes"}}, http.StatusOK},
		{"malformed body", `{"quote_ids":`, &stubQueryService{}, http.StatusBadRequest},
		{"too few ids", `{"quote_ids":[1]}`, &stubQueryService{compareErr: fmt.Errorf("need 2: %w", service.ErrInvalidInput)}, http.StatusBadRequest},
		{"unknown quote", `{"quote_ids":[1,99]}`, &stubQueryService{compareErr: fmt.Errorf("quote 99: %w", service.ErrNotFound)}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/compare", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			NewCompareHandler(tt.svc).ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(store *mocks.MockVectorStore)
		wantStatus int
		wantState  string
	}{
		{
			name: "healthy",
			setup: func(store *mocks.MockVectorStore) {
				store.EXPECT().CollectionExists(gomock.Any(), "historical_quotes").Return(true, nil)
			},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name: "store error",
			setup: func(store *mocks.MockVectorStore) {
				store.EXPECT().CollectionExists(gomock.Any(), "historical_quotes").Return(false, errors.New("refused"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
		{
			name: "collection missing",
			setup: func(store *mocks.MockVectorStore) {
				store.EXPECT().CollectionExists(gomock.Any(), "historical_quotes").Return(false, nil)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockVectorStore(ctrl)
			tt.setup(store)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			NewHealthHandler(store, "historical_quotes").ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Status != tt.wantState {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantState)
			}
		})
	}
}
