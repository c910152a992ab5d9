package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"quotes-ai/internal/config"
	"quotes-ai/internal/llm"
	"quotes-ai/internal/rag"
	"quotes-ai/internal/storage"
	"quotes-ai/internal/vectorstore"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	answerColor = color.New(color.FgGreen)
	sourceColor = color.New(color.FgYellow)
	warnColor   = color.New(color.FgRed)
)

func main() {
	topK := flag.Int("k", 3, "number of quotes to retrieve")
	mode := flag.String("mode", "standard", "analysis mode: basic, standard, comprehensive, comparative")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Keep interactive output clean; warnings still come through.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	ctx := context.Background()
	analysisMode := rag.ParseAnalysisMode(*mode)

	// One-shot mode: remaining args form the question.
	if args := flag.Args(); len(args) > 0 {
		askOnce(ctx, engine, strings.Join(args, " "), *topK, analysisMode)
		return
	}

	promptColor.Println("Historical quotes assistant. Ask a question, or type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}
		askOnce(ctx, engine, question, *topK, analysisMode)
	}
}

func buildEngine(cfg *config.Config) (*rag.Engine, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return nil, fmt.Errorf("creating Qdrant client: %w", err)
	}

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

	return rag.NewEngine(vectorStore, storage.NewQuoteRepo(db), embedder, llmClient, cfg.QdrantCollection, rankCfg, nil), nil
}

func askOnce(ctx context.Context, engine *rag.Engine, question string, topK int, mode rag.AnalysisMode) {
	resp, err := engine.ProcessQuery(ctx, question, topK, mode)
	if err != nil {
		warnColor.Printf("Error: %v\n", err)
		return
	}

	if resp.Degraded {
		warnColor.Printf("(degraded: %s)\n", resp.Err)
	}
	answerColor.Println(resp.Answer)
	if len(resp.SearchResults) > 0 {
		sourceColor.Println("\nSources:")
		for i, doc := range resp.SearchResults {
			sourceColor.Printf("  [%d] %q — %s (score %.2f)\n", i+1, doc.Quote.Quote, doc.Author, doc.Score)
		}
	}
	fmt.Println()
}
