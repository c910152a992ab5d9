package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"quotes-ai/internal/config"
	"quotes-ai/internal/http"
	"quotes-ai/internal/llm"
	"quotes-ai/internal/rag"
	"quotes-ai/internal/storage"
	"quotes-ai/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about famous historical quotes using retrieval
// over a curated quote collection.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Quotes AI API
//   description: |
//     Question answering over a curated collection of historical quotes.
//     Questions are matched against the collection with semantic search and
//     keyword ranking, then answered by a language model grounded in the
//     retrieved quotes.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	quoteRepo := storage.NewQuoteRepo(db)

	ctx := context.Background()
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	rankCfg := rag.RankingConfig{
		SemanticWeight:      cfg.SemanticWeight,
		KeywordBoost:        cfg.KeywordBoost,
		AuthorMatchWeight:   cfg.AuthorMatchWeight,
		TopicMatchWeight:    cfg.TopicMatchWeight,
		AnalysisBoost:       cfg.AnalysisBoost,
		AnalysisIntentScale: cfg.AnalysisIntentScale,
		IntentBoost:         cfg.IntentBoost,
	}

	engine := rag.NewEngine(vectorStore, quoteRepo, embedder, llmClient, cfg.QdrantCollection, rankCfg, nil)
	slog.Info("Query engine initialized")

	router := http.NewRouter(&http.Deps{
		Engine:         engine,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
