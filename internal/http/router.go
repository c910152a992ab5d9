package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quotes-ai/internal/handlers"
	"quotes-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine         handlers.QueryService
	VectorStore    vectorstore.VectorStore
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", handlers.NewAskHandler(deps.Engine))
		r.Method(http.MethodGet, "/search", handlers.NewSearchHandler(deps.Engine))
		r.Method(http.MethodGet, "/stats", handlers.NewStatsHandler(deps.Engine))
		r.Get("/quotes/{id}/analysis", handlers.NewAnalyzeHandler(deps.Engine).ServeHTTP)
		r.Method(http.MethodPost, "/compare", handlers.NewCompareHandler(deps.Engine))
	})

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName))

	return r
}
