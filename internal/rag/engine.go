package rag

import (
	"context"
	"fmt"
	"strings"

	"quotes-ai/internal/contextutil"
	"quotes-ai/internal/llm"
	"quotes-ai/internal/quotes"
	"quotes-ai/internal/service"
	"quotes-ai/internal/storage"
	"quotes-ai/internal/vectorstore"
)

// Embedder converts text to a query vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Generator produces an answer from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Engine wires retrieval, ranking, and generation into the query pipeline.
type Engine struct {
	store      vectorstore.VectorStore
	quotes     storage.QuoteStore
	embedder   Embedder
	generator  Generator
	extractor  *Extractor
	ranker     *Ranker
	collection string
}

// NewEngine builds an Engine. A nil vocabulary or zero-value config falls
// back to defaults.
func NewEngine(store vectorstore.VectorStore, quoteStore storage.QuoteStore, embedder Embedder, generator Generator, collection string, cfg RankingConfig, vocab *Vocabulary) *Engine {
	if cfg == (RankingConfig{}) {
		cfg = DefaultRankingConfig()
	}
	return &Engine{
		store:      store,
		quotes:     quoteStore,
		embedder:   embedder,
		generator:  generator,
		extractor:  NewExtractor(vocab),
		ranker:     NewRanker(cfg),
		collection: collection,
	}
}

// ProcessQuery runs the full pipeline for a question. Upstream failures
// degrade the response instead of failing it: an unavailable embedder falls
// back to keyword-only ranking over a corpus scan, an unavailable vector
// store yields an empty result set, and a failed generation substitutes a
// fallback answer. Only an empty question is an error.
func (e *Engine) ProcessQuery(ctx context.Context, question string, topK int, mode AnalysisMode) (QueryResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(question) == "" {
		return QueryResponse{}, fmt.Errorf("question is required: %w", service.ErrInvalidInput)
	}

	extraction := e.extractor.Extract(question)
	effTopK := EffectiveTopK(question, topK, extraction.Intent, mode)

	resp := QueryResponse{
		AnalysisMode: string(mode),
		AnswerType:   AnswerType(mode),
		UsedTopK:     effTopK,
	}

	docs, degraded, retrievalErr := e.retrieve(ctx, question, extraction, effTopK)
	resp.Degraded = degraded
	if retrievalErr != nil {
		resp.Err = retrievalErr.Error()
		logger.Warn("retrieval degraded", "error", retrievalErr, "question_len", len(question))
	}

	if extraction.Intent.NeedsAnalysis() {
		docs = PreferAnalysis(docs, effTopK)
	} else if len(docs) > effTopK {
		docs = docs[:effTopK]
	}

	resp.SearchResults = docs
	resp.RetrievedCount = len(docs)
	for _, doc := range docs {
		if doc.Interpretation != "" {
			resp.HasInterpretation = true
		}
		if doc.HistoricalSignificance != "" {
			resp.HasHistoricalContext = true
		}
	}

	if len(docs) == 0 {
		resp.Answer = llm.FallbackAnswer
		return resp, nil
	}

	prompt, err := BuildPrompt(question, docs, mode)
	if err != nil {
		return QueryResponse{}, err
	}
	answer, err := e.generator.Generate(ctx, prompt, MaxAnswerTokens(mode))
	if err != nil {
		logger.Warn("generation failed, using fallback answer", "error", err)
		resp.Answer = llm.FallbackAnswer
		resp.Degraded = true
		if resp.Err == "" {
			resp.Err = err.Error()
		}
		return resp, nil
	}
	resp.Answer = answer
	return resp, nil
}

// SearchQuotes runs retrieval and ranking without generation.
func (e *Engine) SearchQuotes(ctx context.Context, question string, topK int) ([]ScoredDocument, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is required: %w", service.ErrInvalidInput)
	}
	extraction := e.extractor.Extract(question)
	effTopK := EffectiveTopK(question, topK, extraction.Intent, ModeStandard)
	docs, _, err := e.retrieve(ctx, question, extraction, effTopK)
	if err != nil && len(docs) == 0 {
		return nil, err
	}
	if len(docs) > effTopK {
		docs = docs[:effTopK]
	}
	return docs, nil
}

// retrieve fetches candidates, ranks them, and drops duplicates. The
// returned error reports a degraded (not failed) retrieval; the bool is
// true when the semantic signal was unavailable.
func (e *Engine) retrieve(ctx context.Context, question string, extraction Extraction, effTopK int) ([]ScoredDocument, bool, error) {
	fetchLimit := 2 * effTopK

	vector, embedErr := e.embedder.EmbedText(ctx, question)
	if embedErr == nil {
		results, err := e.store.Query(ctx, e.collection, vector, fetchLimit)
		if err != nil {
			return nil, false, fmt.Errorf("vector search: %w", err)
		}
		candidates := make([]Candidate, 0, len(results))
		for _, res := range results {
			q, err := quotes.FromPayload(res.Meta)
			if err != nil {
				contextutil.LoggerFromContext(ctx).Warn("skipping malformed point", "point_id", res.PointID, "error", err)
				continue
			}
			candidates = append(candidates, Candidate{Quote: q, SemanticScore: float64(res.Score)})
		}
		return Dedup(e.ranker.Rank(candidates, extraction)), false, nil
	}

	// Keyword-only fallback: rank a corpus scan without semantic scores.
	points, err := e.store.Scan(ctx, e.collection, scanLimit)
	if err != nil {
		return nil, true, fmt.Errorf("embedding unavailable and scan failed: %v: %w", err, embedErr)
	}
	candidates := make([]Candidate, 0, len(points))
	for _, pt := range points {
		q, ferr := quotes.FromPayload(pt.Meta)
		if ferr != nil {
			continue
		}
		candidates = append(candidates, Candidate{Quote: q})
	}
	docs := Dedup(e.ranker.Rank(candidates, extraction))
	if len(docs) > fetchLimit {
		docs = docs[:fetchLimit]
	}
	return docs, true, fmt.Errorf("embedding service unavailable, keyword-only ranking: %w", embedErr)
}

// scanLimit caps the fallback corpus scan; the curated set is far smaller.
const scanLimit = 500

// Stats reports on the vector collection backing the corpus.
func (e *Engine) Stats(ctx context.Context) (CollectionStats, error) {
	stats := CollectionStats{CollectionName: e.collection}
	exists, err := e.store.CollectionExists(ctx, e.collection)
	if err != nil {
		return stats, fmt.Errorf("checking collection: %w", err)
	}
	if !exists {
		stats.Status = "missing"
		return stats, nil
	}
	count, err := e.store.Count(ctx, e.collection)
	if err != nil {
		return stats, fmt.Errorf("counting points: %w", err)
	}
	stats.VectorsCount = count
	stats.Status = "green"
	return stats, nil
}

// AnalyzeQuote returns the analysis for one quote, using curated dataset
// fields when present and the language model otherwise.
func (e *Engine) AnalyzeQuote(ctx context.Context, id int) (QuoteAnalysis, error) {
	q, err := e.quotes.GetByID(ctx, id)
	if err != nil {
		return QuoteAnalysis{}, err
	}
	analysis := QuoteAnalysis{
		QuoteID: q.ID,
		Quote:   q.Quote,
		Author:  q.Author,
	}
	if q.HasAnalysis() {
		analysis.Interpretation = q.Interpretation
		analysis.HistoricalSignificance = q.HistoricalSignificance
		analysis.Themes = q.Themes
		analysis.ModernRelevance = q.ModernRelevance
		analysis.Origin = "dataset"
		return analysis, nil
	}
	generated, err := e.generator.Generate(ctx, BuildAnalysisPrompt(q.Quote, q.Author), MaxAnswerTokens(ModeComprehensive))
	if err != nil {
		return QuoteAnalysis{}, fmt.Errorf("generating analysis: %v: %w", err, service.ErrUpstreamUnavailable)
	}
	analysis.Interpretation = generated
	analysis.Origin = "generated"
	return analysis, nil
}

// CompareQuotes compares two or three quotes by ID.
func (e *Engine) CompareQuotes(ctx context.Context, ids []int) (ComparisonResult, error) {
	if len(ids) < 2 || len(ids) > 3 {
		return ComparisonResult{}, fmt.Errorf("comparison needs 2 or 3 quote ids, got %d: %w",
			len(ids), service.ErrInvalidInput)
	}
	result := ComparisonResult{}
	for _, id := range ids {
		analysis, err := e.AnalyzeQuote(ctx, id)
		if err != nil {
			return ComparisonResult{}, err
		}
		result.Individual = append(result.Individual, analysis)
		result.ComparedQuotes = append(result.ComparedQuotes,
			fmt.Sprintf("%q — %s", analysis.Quote, analysis.Author))
	}
	generated, err := e.generator.Generate(ctx, BuildComparisonPrompt(result.Individual), MaxAnswerTokens(ModeComparative))
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("generating comparison: %v: %w", err, service.ErrUpstreamUnavailable)
	}
	result.Analysis = generated
	return result, nil
}
