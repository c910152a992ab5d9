package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotes-ai/internal/contextutil"
)

func TestLoggerMiddleware(t *testing.T) {
	// LoggerFromContext falls back to slog.Default, so a request-scoped
	// logger must be a different instance.
	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextutil.LoggerFromContext(r.Context()) != slog.Default() {
			sawLogger = true
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	LoggerMiddleware(inner).ServeHTTP(httptest.NewRecorder(), req)

	if !sawLogger {
		t.Error("handler did not receive a logger in its context")
	}
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("echoes origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		CORS(inner).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		rec := httptest.NewRecorder()
		CORS(inner).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", rec.Code)
		}
	})
}
