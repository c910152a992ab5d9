package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"quotes-ai/internal/contextutil"
	"quotes-ai/internal/rag"
)

// Case is one evaluation scenario: a question with its expected answer and
// the quote IDs a correct retrieval should surface.
type Case struct {
	Question         string `json:"question"`
	ExpectedAnswer   string `json:"expected_answer"`
	ExpectedQuoteIDs []int  `json:"expected_quote_ids"`
}

// LoadCases reads evaluation cases from a JSON file.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cases file: %w", err)
	}
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parsing cases file: %w", err)
	}
	return cases, nil
}

// Outcome is what one pipeline run produced for a question.
type Outcome struct {
	Answer        string
	RetrievedIDs  []int
	SourceTexts   []string
	WasAnalytical bool
}

// Pipeline abstracts the system under evaluation.
type Pipeline interface {
	Process(ctx context.Context, question string, topK int) (Outcome, error)
}

// EnginePipeline adapts a query engine to the Pipeline interface.
type EnginePipeline struct {
	Engine *rag.Engine
	Mode   rag.AnalysisMode
}

func (p *EnginePipeline) Process(ctx context.Context, question string, topK int) (Outcome, error) {
	mode := p.Mode
	if mode == "" {
		mode = rag.ModeStandard
	}
	resp, err := p.Engine.ProcessQuery(ctx, question, topK, mode)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{
		Answer:        resp.Answer,
		WasAnalytical: resp.AnswerType == "comprehensive_analysis" || resp.AnswerType == "comparative_analysis",
	}
	for _, doc := range resp.SearchResults {
		out.RetrievedIDs = append(out.RetrievedIDs, doc.ID)
		text := doc.Quote.Quote + " " + doc.Author
		if doc.Interpretation != "" {
			text += " " + doc.Interpretation
		}
		if doc.HistoricalSignificance != "" {
			text += " " + doc.HistoricalSignificance
		}
		out.SourceTexts = append(out.SourceTexts, text)
	}
	return out, nil
}

// CaseResult is one evaluated case with its scores.
type CaseResult struct {
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	RetrievedIDs []int   `json:"retrieved_ids"`
	ExpectedIDs  []int   `json:"expected_ids"`
	Metrics      Metrics `json:"metrics"`
	Error        string  `json:"error,omitempty"`
}

// ReportConfig records the settings a report was produced under.
type ReportConfig struct {
	TopK              int `json:"top_k"`
	NumQueries        int `json:"num_queries"`
	SuccessfulQueries int `json:"successful_queries"`
}

// Report is the full evaluation output. Averages cover successful cases
// only.
type Report struct {
	TestResults    []CaseResult `json:"test_results"`
	AverageMetrics Metrics      `json:"average_metrics"`
	Config         ReportConfig `json:"config"`
}

// Evaluator runs cases through a pipeline and scores the outcomes.
type Evaluator struct {
	pipeline Pipeline
	embedder Embedder
	topK     int
}

// NewEvaluator builds an Evaluator. topK is passed through to every case.
func NewEvaluator(pipeline Pipeline, embedder Embedder, topK int) *Evaluator {
	if topK < 1 {
		topK = 3
	}
	return &Evaluator{pipeline: pipeline, embedder: embedder, topK: topK}
}

// Run evaluates the cases sequentially. A failing case is recorded with its
// error and skipped from the averages; it never aborts the run.
func (e *Evaluator) Run(ctx context.Context, cases []Case) (Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	report := Report{Config: ReportConfig{TopK: e.topK, NumQueries: len(cases)}}
	var sum Metrics

	for i, c := range cases {
		result := CaseResult{Question: c.Question, ExpectedIDs: c.ExpectedQuoteIDs}

		started := time.Now()
		outcome, err := e.pipeline.Process(ctx, c.Question, e.topK)
		elapsed := time.Since(started).Seconds()
		if err != nil {
			result.Error = err.Error()
			logger.Warn("case failed", "case", i, "error", err)
			report.TestResults = append(report.TestResults, result)
			continue
		}

		result.Answer = outcome.Answer
		result.RetrievedIDs = outcome.RetrievedIDs
		result.Metrics = Metrics{
			Precision:     Precision(outcome.RetrievedIDs, c.ExpectedQuoteIDs),
			Recall:        Recall(outcome.RetrievedIDs, c.ExpectedQuoteIDs),
			Hallucination: Hallucination(outcome.Answer, outcome.SourceTexts),
			ResponseTime:  elapsed,
		}
		if outcome.WasAnalytical {
			result.Metrics.AnalysisQuality = AnalysisQuality(outcome.Answer)
		}
		relevance, err := AnswerRelevance(ctx, e.embedder, outcome.Answer, c.ExpectedAnswer)
		if err != nil {
			logger.Warn("relevance scoring unavailable", "case", i, "error", err)
		}
		result.Metrics.AnswerRelevance = relevance

		sum.Precision += result.Metrics.Precision
		sum.Recall += result.Metrics.Recall
		sum.AnswerRelevance += result.Metrics.AnswerRelevance
		sum.Hallucination += result.Metrics.Hallucination
		sum.AnalysisQuality += result.Metrics.AnalysisQuality
		sum.ResponseTime += result.Metrics.ResponseTime
		report.Config.SuccessfulQueries++

		report.TestResults = append(report.TestResults, result)
	}

	if n := float64(report.Config.SuccessfulQueries); n > 0 {
		report.AverageMetrics = Metrics{
			Precision:       sum.Precision / n,
			Recall:          sum.Recall / n,
			AnswerRelevance: sum.AnswerRelevance / n,
			Hallucination:   sum.Hallucination / n,
			AnalysisQuality: sum.AnalysisQuality / n,
			ResponseTime:    sum.ResponseTime / n,
		}
	}
	return report, nil
}

// SaveReport writes a report as indented JSON.
func SaveReport(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// LoadReport reads a previously saved report.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("parsing report: %w", err)
	}
	return report, nil
}
