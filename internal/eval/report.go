package eval

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Summarize renders a report as a markdown document.
func Summarize(report Report) string {
	var b strings.Builder
	b.WriteString("# Evaluation Report\n\n")
	fmt.Fprintf(&b, "Queries: %d total, %d successful, top_k=%d\n\n",
		report.Config.NumQueries, report.Config.SuccessfulQueries, report.Config.TopK)

	b.WriteString("## Average Metrics\n\n")
	b.WriteString("| Metric | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Precision | %.3f |\n", report.AverageMetrics.Precision)
	fmt.Fprintf(&b, "| Recall | %.3f |\n", report.AverageMetrics.Recall)
	fmt.Fprintf(&b, "| Answer relevance | %.3f |\n", report.AverageMetrics.AnswerRelevance)
	fmt.Fprintf(&b, "| Hallucination | %.3f |\n", report.AverageMetrics.Hallucination)
	fmt.Fprintf(&b, "| Analysis quality | %.3f |\n", report.AverageMetrics.AnalysisQuality)
	fmt.Fprintf(&b, "| Response time (s) | %.3f |\n", report.AverageMetrics.ResponseTime)

	b.WriteString("\n## Cases\n\n")
	for i, result := range report.TestResults {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, result.Question)
		if result.Error != "" {
			fmt.Fprintf(&b, "**Failed:** %s\n\n", result.Error)
			continue
		}
		fmt.Fprintf(&b, "- Retrieved: %v (expected %v)\n", result.RetrievedIDs, result.ExpectedIDs)
		fmt.Fprintf(&b, "- Precision %.3f, recall %.3f, relevance %.3f, hallucination %.3f\n\n",
			result.Metrics.Precision, result.Metrics.Recall,
			result.Metrics.AnswerRelevance, result.Metrics.Hallucination)
	}
	return b.String()
}

// Compare renders a side-by-side markdown comparison of two reports,
// typically a baseline and a candidate configuration.
func Compare(baseline, candidate Report) string {
	var b strings.Builder
	b.WriteString("# Evaluation Comparison\n\n")
	b.WriteString("| Metric | Baseline | Candidate | Delta |\n|---|---|---|---|\n")
	row := func(name string, base, cand float64) {
		fmt.Fprintf(&b, "| %s | %.3f | %.3f | %+.3f |\n", name, base, cand, cand-base)
	}
	row("Precision", baseline.AverageMetrics.Precision, candidate.AverageMetrics.Precision)
	row("Recall", baseline.AverageMetrics.Recall, candidate.AverageMetrics.Recall)
	row("Answer relevance", baseline.AverageMetrics.AnswerRelevance, candidate.AverageMetrics.AnswerRelevance)
	row("Hallucination", baseline.AverageMetrics.Hallucination, candidate.AverageMetrics.Hallucination)
	row("Analysis quality", baseline.AverageMetrics.AnalysisQuality, candidate.AverageMetrics.AnalysisQuality)
	return b.String()
}

var reportMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts a markdown summary to an HTML page body.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := reportMarkdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering report html: %w", err)
	}
	return buf.String(), nil
}
