package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"quotes-ai/internal/config"
	"quotes-ai/internal/eval"
	"quotes-ai/internal/llm"
	"quotes-ai/internal/rag"
	"quotes-ai/internal/storage"
	"quotes-ai/internal/vectorstore"
)

func main() {
	casesPath := flag.String("cases", "./data/eval_cases.json", "path to the evaluation cases JSON file")
	reportPath := flag.String("out", "./data/eval_report.json", "where to write the report JSON")
	htmlPath := flag.String("html", "", "optionally write an HTML report to this path")
	baseline := flag.String("baseline", "", "optionally compare against a previous report")
	topK := flag.Int("k", 3, "top_k passed to every case")
	mode := flag.String("mode", "standard", "analysis mode for all cases")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := run(context.Background(), cfg, *casesPath, *reportPath, *htmlPath, *baseline, *topK, *mode); err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, casesPath, reportPath, htmlPath, baselinePath string, topK int, mode string) error {
	cases, err := eval.LoadCases(casesPath)
	if err != nil {
		return err
	}
	slog.Info("Cases loaded", "path", casesPath, "count", len(cases))

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

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return fmt.Errorf("creating Qdrant client: %w", err)
	}
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	engine := rag.NewEngine(vectorStore, storage.NewQuoteRepo(db), embedder, llmClient, cfg.QdrantCollection, rag.DefaultRankingConfig(), nil)
	pipeline := &eval.EnginePipeline{Engine: engine, Mode: rag.ParseAnalysisMode(mode)}

	report, err := eval.NewEvaluator(pipeline, embedder, topK).Run(ctx, cases)
	if err != nil {
		return err
	}

	if err := eval.SaveReport(reportPath, report); err != nil {
		return err
	}
	slog.Info("Report written", "path", reportPath,
		"precision", report.AverageMetrics.Precision,
		"recall", report.AverageMetrics.Recall,
		"hallucination", report.AverageMetrics.Hallucination)

	markdown := eval.Summarize(report)
	if baselinePath != "" {
		base, err := eval.LoadReport(baselinePath)
		if err != nil {
			return err
		}
		markdown += "\n" + eval.Compare(base, report)
	}
	fmt.Println(markdown)

	if htmlPath != "" {
		html, err := eval.RenderHTML(markdown)
		if err != nil {
			return err
		}
		page := "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Evaluation Report</title></head><body>\n" +
			html + "</body></html>\n"
		if err := os.MkdirAll(filepath.Dir(htmlPath), 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
		if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		slog.Info("HTML report written", "path", htmlPath)
	}
	return nil
}
