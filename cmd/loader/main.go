package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"

	"quotes-ai/internal/config"
	"quotes-ai/internal/llm"
	"quotes-ai/internal/quotes"
	"quotes-ai/internal/storage"
	"quotes-ai/internal/vectorstore"
)

// pointNamespace keeps point IDs stable across reloads so re-running the
// loader overwrites points instead of duplicating them.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

const embedBatchSize = 32

func main() {
	file := flag.String("file", "./data/quotes.json", "path to the quotes JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := run(context.Background(), cfg, *file); err != nil {
		log.Fatalf("Load failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, file string) error {
	qs, err := readQuotes(file)
	if err != nil {
		return err
	}
	slog.Info("Quotes file parsed", "path", file, "count", len(qs))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := storage.NewQuoteRepo(db).ReplaceAll(ctx, qs); err != nil {
		return fmt.Errorf("storing quotes: %w", err)
	}
	slog.Info("Quotes stored", "path", cfg.DBPath)

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return fmt.Errorf("creating Qdrant client: %w", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		return fmt.Errorf("ensuring collection: %w", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	for start := 0; start < len(qs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(qs) {
			end = len(qs)
		}
		batch := qs[start:end]

		texts := make([]string, len(batch))
		for i, q := range batch {
			texts[i] = q.EmbeddingText()
		}
		vectors, err := embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch at %d: %w", start, err)
		}

		points := make([]vectorstore.Point, len(batch))
		for i, q := range batch {
			points[i] = vectorstore.Point{
				ID:   uuid.NewSHA1(pointNamespace, []byte(strconv.Itoa(q.ID))).String(),
				Vec:  vectors[i],
				Meta: q.Payload(),
			}
		}
		if err := vectorStore.Upsert(ctx, cfg.QdrantCollection, points); err != nil {
			return fmt.Errorf("upserting batch at %d: %w", start, err)
		}
		slog.Info("Batch indexed", "from", start, "to", end)
	}

	count, err := vectorStore.Count(ctx, cfg.QdrantCollection)
	if err != nil {
		return fmt.Errorf("counting points: %w", err)
	}
	slog.Info("Load complete", "collection", cfg.QdrantCollection, "points", count)
	return nil
}

func readQuotes(path string) ([]quotes.Quote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading quotes file: %w", err)
	}
	var qs []quotes.Quote
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parsing quotes file: %w", err)
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("quotes file %s is empty", path)
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("quote at index %d: %w", i, err)
		}
	}
	return qs, nil
}
