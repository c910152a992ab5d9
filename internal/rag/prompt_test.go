package rag

import (
	"errors"
	"strings"
	"testing"

	"quotes-ai/internal/quotes"
	"quotes-ai/internal/service"
)

func TestBuildPrompt_NumbersAndCitations(t *testing.T) {
	docs := []ScoredDocument{
		{Quote: quotes.Quote{ID: 1, Quote: "The only thing we have to fear is fear itself.", Author: "Franklin D. Roosevelt", Era: "1930s"}},
		{Quote: quotes.Quote{ID: 2, Quote: "I have a dream.", Author: "Martin Luther King Jr."}},
	}

	prompt, err := BuildPrompt("What did Roosevelt say about fear?", docs, ModeStandard)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	for _, want := range []string{
		"[1]", "[2]",
		"Franklin D. Roosevelt", "(1930s)",
		"Martin Luther King Jr.",
		"I cannot find that information in my knowledge base",
		"Question: What did Roosevelt say about fear?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("BuildPrompt() missing %q", want)
		}
	}
}

func TestBuildPrompt_ComprehensiveIncludesAnalysisFields(t *testing.T) {
	docs := []ScoredDocument{
		{Quote: quotes.Quote{
			ID:                     1,
			Quote:                  "Imagination is more important than knowledge.",
			Author:                 "Albert Einstein",
			Interpretation:         "creativity outlasts accumulated facts",
			HistoricalSignificance: "said during a 1929 interview",
			ModernRelevance:        "still cited in education debates",
		}},
	}

	prompt, err := BuildPrompt("Explain this quote", docs, ModeComprehensive)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	for _, want := range []string{
		"Interpretation: creativity outlasts accumulated facts",
		"Historical significance: said during a 1929 interview",
		"Modern relevance: still cited in education debates",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("BuildPrompt(comprehensive) missing %q", want)
		}
	}
}

func TestBuildPrompt_BasicOmitsAnalysisFields(t *testing.T) {
	docs := []ScoredDocument{
		{Quote: quotes.Quote{ID: 1, Quote: "q", Author: "a", Interpretation: "hidden interpretation"}},
	}

	prompt, err := BuildPrompt("question", docs, ModeBasic)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if strings.Contains(prompt, "hidden interpretation") {
		t.Errorf("BuildPrompt(basic) leaked analysis fields")
	}
}

func TestBuildPrompt_ComparativeNeedsTwoDocs(t *testing.T) {
	docs := []ScoredDocument{
		{Quote: quotes.Quote{ID: 1, Quote: "q", Author: "a"}},
	}

	_, err := BuildPrompt("compare", docs, ModeComparative)
	if !errors.Is(err, service.ErrInsufficientContext) {
		t.Errorf("BuildPrompt(comparative, 1 doc) error = %v, want ErrInsufficientContext", err)
	}

	docs = append(docs, ScoredDocument{Quote: quotes.Quote{ID: 2, Quote: "r", Author: "b"}})
	if _, err := BuildPrompt("compare", docs, ModeComparative); err != nil {
		t.Errorf("BuildPrompt(comparative, 2 docs) error = %v, want nil", err)
	}
}

func TestAnswerType(t *testing.T) {
	tests := []struct {
		mode AnalysisMode
		want string
	}{
		{ModeBasic, "basic_answer"},
		{ModeStandard, "standard_answer"},
		{ModeComprehensive, "comprehensive_analysis"},
		{ModeComparative, "comparative_analysis"},
	}
	for _, tt := range tests {
		if got := AnswerType(tt.mode); got != tt.want {
			t.Errorf("AnswerType(%s) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestMaxAnswerTokens(t *testing.T) {
	if got := MaxAnswerTokens(ModeComprehensive); got != 400 {
		t.Errorf("MaxAnswerTokens(comprehensive) = %d, want 400", got)
	}
	if got := MaxAnswerTokens(ModeComparative); got != 400 {
		t.Errorf("MaxAnswerTokens(comparative) = %d, want 400", got)
	}
	if got := MaxAnswerTokens(ModeStandard); got != 200 {
		t.Errorf("MaxAnswerTokens(standard) = %d, want 200", got)
	}
}
