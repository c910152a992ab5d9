package rag

import (
	"fmt"
	"strings"

	"quotes-ai/internal/service"
)

// AnswerType returns the response label matching an analysis mode.
func AnswerType(mode AnalysisMode) string {
	switch mode {
	case ModeBasic:
		return "basic_answer"
	case ModeComprehensive:
		return "comprehensive_analysis"
	case ModeComparative:
		return "comparative_analysis"
	default:
		return "standard_answer"
	}
}

// MaxAnswerTokens returns the generation budget for a mode.
func MaxAnswerTokens(mode AnalysisMode) int {
	if mode == ModeComprehensive || mode == ModeComparative {
		return 400
	}
	return 200
}

// BuildPrompt assembles the grounded prompt for a question and its retrieved
// documents. Every document is numbered so the model can cite [1]..[n].
// Comparative mode requires at least two documents and fails with
// service.ErrInsufficientContext otherwise.
func BuildPrompt(question string, docs []ScoredDocument, mode AnalysisMode) (string, error) {
	if mode == ModeComparative && len(docs) < 2 {
		return "", fmt.Errorf("comparative analysis needs at least 2 quotes, got %d: %w",
			len(docs), service.ErrInsufficientContext)
	}

	var b strings.Builder
	b.WriteString("You are a historian's assistant answering questions about famous historical quotes.\n")
	b.WriteString("Answer using ONLY the numbered quotes below. Cite quotes by their number, like [1].\n")
	b.WriteString("If the quotes do not contain the answer, reply exactly: " +
		"\"I cannot find that information in my knowledge base\".\n\n")

	b.WriteString("Quotes:\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "[%d] \"%s\" — %s", i+1, doc.Quote.Quote, doc.Author)
		if doc.Era != "" {
			fmt.Fprintf(&b, " (%s)", doc.Era)
		}
		b.WriteString("\n")
		if doc.Context != "" {
			fmt.Fprintf(&b, "    Context: %s\n", doc.Context)
		}
		switch mode {
		case ModeComprehensive, ModeComparative:
			if doc.Interpretation != "" {
				fmt.Fprintf(&b, "    Interpretation: %s\n", doc.Interpretation)
			}
			if doc.HistoricalSignificance != "" {
				fmt.Fprintf(&b, "    Historical significance: %s\n", doc.HistoricalSignificance)
			}
			if doc.ModernRelevance != "" {
				fmt.Fprintf(&b, "    Modern relevance: %s\n", doc.ModernRelevance)
			}
		case ModeStandard:
			if doc.Interpretation != "" {
				fmt.Fprintf(&b, "    Interpretation: %s\n", doc.Interpretation)
			}
		}
	}

	b.WriteString("\n")
	switch mode {
	case ModeBasic:
		b.WriteString("Give a short, direct answer.\n")
	case ModeComprehensive:
		b.WriteString("Give a thorough answer covering the quote's meaning, its historical context, and why it still matters.\n")
	case ModeComparative:
		b.WriteString("Compare and contrast the quotes: shared themes, differences in perspective, and historical setting.\n")
	default:
		b.WriteString("Give a clear, grounded answer.\n")
	}
	fmt.Fprintf(&b, "\nQuestion: %s\nAnswer:", question)

	return b.String(), nil
}

// BuildAnalysisPrompt asks the model to analyze a single quote that has no
// curated analysis fields.
func BuildAnalysisPrompt(quote, author string) string {
	var b strings.Builder
	b.WriteString("Analyze the following historical quote. Cover its interpretation, ")
	b.WriteString("historical significance, main themes, and modern relevance.\n\n")
	fmt.Fprintf(&b, "\"%s\" — %s\n\nAnalysis:", quote, author)
	return b.String()
}

// BuildComparisonPrompt asks the model to compare two or three quotes.
func BuildComparisonPrompt(analyses []QuoteAnalysis) string {
	var b strings.Builder
	b.WriteString("Compare the following historical quotes. Discuss shared themes, ")
	b.WriteString("differences in perspective, and how their historical settings shaped them.\n\n")
	for i, a := range analyses {
		fmt.Fprintf(&b, "[%d] \"%s\" — %s\n", i+1, a.Quote, a.Author)
		if a.Interpretation != "" {
			fmt.Fprintf(&b, "    Interpretation: %s\n", a.Interpretation)
		}
		if a.HistoricalSignificance != "" {
			fmt.Fprintf(&b, "    Historical significance: %s\n", a.HistoricalSignificance)
		}
	}
	b.WriteString("\nComparison:")
	return b.String()
}
