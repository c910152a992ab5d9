package rag

import (
	"strings"

	"quotes-ai/internal/quotes"
)

// AnalysisMode controls prompt structure and answer verbosity.
type AnalysisMode string

const (
	ModeBasic         AnalysisMode = "basic"
	ModeStandard      AnalysisMode = "standard"
	ModeComprehensive AnalysisMode = "comprehensive"
	ModeComparative   AnalysisMode = "comparative"
)

// ParseAnalysisMode maps a mode string to an AnalysisMode, falling back to
// standard for unknown or empty values.
func ParseAnalysisMode(s string) AnalysisMode {
	switch AnalysisMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeBasic:
		return ModeBasic
	case ModeComprehensive:
		return ModeComprehensive
	case ModeComparative:
		return ModeComparative
	default:
		return ModeStandard
	}
}

// IntentType is the coarse classification of a question's purpose.
type IntentType string

const (
	IntentRetrieval      IntentType = "retrieval"
	IntentInterpretation IntentType = "interpretation"
	IntentHistorical     IntentType = "historical"
	IntentComparison     IntentType = "comparison"
)

// Intent classifies a question from lexical triggers alone. Type is the
// first matching flag in priority order interpretation > historical >
// comparison, with retrieval as the fallback.
type Intent struct {
	Type           IntentType `json:"type"`
	Interpretation bool       `json:"interpretation"`
	Historical     bool       `json:"historical"`
	Comparison     bool       `json:"comparison"`
}

// NeedsAnalysis reports whether the question asks for interpretive or
// historical depth rather than plain retrieval.
func (i Intent) NeedsAnalysis() bool {
	return i.Interpretation || i.Historical
}

// Extraction is the result of keyword and intent extraction for a question.
type Extraction struct {
	Keywords []string `json:"keywords"`
	Intent   Intent   `json:"intent"`
}

// Candidate pairs a quote with its semantic similarity to the query.
// Candidates drawn from a scan carry a zero semantic score.
type Candidate struct {
	Quote         quotes.Quote
	SemanticScore float64
}

// ScoreBreakdown records the per-signal components of a fused score.
type ScoreBreakdown struct {
	Semantic      float64 `json:"semantic"`
	Keyword       float64 `json:"keyword"`
	AnalysisBoost float64 `json:"analysis_boost"`
	IntentBoost   float64 `json:"intent_boost"`
}

// ScoredDocument is the transient per-query view of a quote with its fused
// score. It is created during ranking and discarded after the response.
type ScoredDocument struct {
	quotes.Quote
	Score           float64        `json:"score"`
	MatchedKeywords []string       `json:"matched_keywords,omitempty"`
	Breakdown       ScoreBreakdown `json:"score_breakdown"`
}

// QueryResponse is the result of end-to-end query processing. Pipeline
// degradations never surface as errors: Err carries the condition and the
// answer falls back to a readable message instead.
type QueryResponse struct {
	Answer               string           `json:"answer"`
	RetrievedCount       int              `json:"retrieved_count"`
	SearchResults        []ScoredDocument `json:"search_results"`
	AnalysisMode         string           `json:"analysis_mode"`
	AnswerType           string           `json:"answer_type"`
	UsedTopK             int              `json:"used_top_k"`
	HasInterpretation    bool             `json:"has_interpretation"`
	HasHistoricalContext bool             `json:"has_historical_context"`
	Degraded             bool             `json:"degraded,omitempty"`
	Err                  string           `json:"error,omitempty"`
}

// CollectionStats describes the vector store collection backing the corpus.
type CollectionStats struct {
	CollectionName string `json:"collection_name"`
	VectorsCount   uint64 `json:"vectors_count"`
	Status         string `json:"status"`
}

// QuoteAnalysis is the result of analyzing a single quote, either from
// curated dataset fields or generated by the language model.
type QuoteAnalysis struct {
	QuoteID                int    `json:"quote_id"`
	Quote                  string `json:"quote"`
	Author                 string `json:"author"`
	Interpretation         string `json:"interpretation"`
	HistoricalSignificance string `json:"historical_significance"`
	Themes                 string `json:"themes"`
	ModernRelevance        string `json:"modern_relevance"`
	Origin                 string `json:"origin"` // "dataset" or "generated"
}

// ComparisonResult is the outcome of comparing two or three quotes.
type ComparisonResult struct {
	ComparedQuotes []string        `json:"compared_quotes"`
	Analysis       string          `json:"comparison_analysis"`
	Individual     []QuoteAnalysis `json:"individual_analyses"`
}

// RankingConfig holds the fusion weights. The keyword boost is deliberately
// large enough for keyword matches to outrank pure semantic similarity; that
// is hand-tuned against the curated quote set and is a known tuning risk.
type RankingConfig struct {
	SemanticWeight    float64
	KeywordBoost      float64
	AuthorMatchWeight float64
	TopicMatchWeight  float64
	AnalysisBoost     float64
	// AnalysisIntentScale multiplies AnalysisBoost when the intent is
	// interpretation or historical.
	AnalysisIntentScale float64
	IntentBoost         float64
}

// DefaultRankingConfig returns the weights the corpus was tuned with.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		SemanticWeight:      1.0,
		KeywordBoost:        0.5,
		AuthorMatchWeight:   2.0,
		TopicMatchWeight:    1.0,
		AnalysisBoost:       0.3,
		AnalysisIntentScale: 1.5,
		IntentBoost:         0.1,
	}
}
