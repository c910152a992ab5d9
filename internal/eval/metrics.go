package eval

import (
	"context"
	"math"
	"regexp"
	"strings"
)

// Embedder converts text to a vector for relevance scoring.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Metrics is the per-case evaluation scorecard. Scores are in [0,1];
// ResponseTime is wall-clock seconds.
type Metrics struct {
	Precision       float64 `json:"precision"`
	Recall          float64 `json:"recall"`
	AnswerRelevance float64 `json:"answer_relevance"`
	Hallucination   float64 `json:"hallucination_score"`
	AnalysisQuality float64 `json:"analysis_quality"`
	ResponseTime    float64 `json:"response_time_seconds"`
}

// Precision is the fraction of retrieved IDs that are expected. An empty
// retrieval scores 0.
func Precision(retrieved, expected []int) float64 {
	if len(retrieved) == 0 {
		return 0
	}
	return float64(intersectCount(retrieved, expected)) / float64(len(retrieved))
}

// Recall is the fraction of expected IDs that were retrieved. An empty
// expectation scores 0, same as an empty retrieval does for precision.
func Recall(retrieved, expected []int) float64 {
	if len(expected) == 0 {
		return 0
	}
	return float64(intersectCount(retrieved, expected)) / float64(len(expected))
}

func intersectCount(a, b []int) int {
	set := make(map[int]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	n := 0
	seen := make(map[int]struct{}, len(a))
	for _, id := range a {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := set[id]; ok {
			n++
		}
	}
	return n
}

// AnswerRelevance embeds both texts and maps their cosine similarity from
// [-1,1] to [0,1]. Embedding failures score 0 with the error returned.
func AnswerRelevance(ctx context.Context, embedder Embedder, answer, expected string) (float64, error) {
	if strings.TrimSpace(answer) == "" || strings.TrimSpace(expected) == "" {
		return 0, nil
	}
	av, err := embedder.EmbedText(ctx, answer)
	if err != nil {
		return 0, err
	}
	ev, err := embedder.EmbedText(ctx, expected)
	if err != nil {
		return 0, err
	}
	return (cosine(av, ev) + 1) / 2, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Hallucination weights for the three unsupported-content signals.
const (
	weightGroundedness   = 0.6
	weightNumbers        = 0.25
	weightContentWords   = 0.15
	hallucinationEpsilon = 0.05
)

var abstentionPhrases = []string{
	"i cannot find that information",
	"i don't have that information",
	"not in my knowledge base",
	"no relevant quotes",
}

var numberPattern = regexp.MustCompile(`\b\d{2,4}\b`)

// Hallucination scores how much of the answer is unsupported by the source
// texts. An honest abstention scores 0. Otherwise the score blends three
// signals: sentence-level groundedness, numbers absent from the sources,
// and content words absent from the sources. Scores under a small epsilon
// snap to 0 so lightly paraphrased answers are not flagged.
func Hallucination(answer string, sources []string) float64 {
	lower := strings.ToLower(answer)
	if strings.TrimSpace(lower) == "" {
		return 0
	}
	for _, phrase := range abstentionPhrases {
		if strings.Contains(lower, phrase) {
			return 0
		}
	}

	sourceBlob := strings.ToLower(strings.Join(sources, " "))

	score := weightGroundedness*(1-groundedness(lower, sourceBlob)) +
		weightNumbers*unsupportedNumberFrac(lower, sourceBlob) +
		weightContentWords*unsupportedWordFrac(lower, sourceBlob)

	if score < hallucinationEpsilon {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// groundedness is the fraction of answer sentences sharing at least a third
// of their content words with the sources.
func groundedness(answer, sourceBlob string) float64 {
	sentences := splitSentences(answer)
	if len(sentences) == 0 {
		return 1
	}
	grounded := 0
	for _, sentence := range sentences {
		words := contentWords(sentence)
		if len(words) == 0 {
			grounded++
			continue
		}
		hits := 0
		for _, w := range words {
			if strings.Contains(sourceBlob, w) {
				hits++
			}
		}
		if float64(hits) >= float64(len(words))/3 {
			grounded++
		}
	}
	return float64(grounded) / float64(len(sentences))
}

func unsupportedNumberFrac(answer, sourceBlob string) float64 {
	numbers := numberPattern.FindAllString(answer, -1)
	if len(numbers) == 0 {
		return 0
	}
	missing := 0
	for _, n := range numbers {
		if !strings.Contains(sourceBlob, n) {
			missing++
		}
	}
	return float64(missing) / float64(len(numbers))
}

func unsupportedWordFrac(answer, sourceBlob string) float64 {
	words := contentWords(answer)
	if len(words) == 0 {
		return 0
	}
	missing := 0
	for _, w := range words {
		if !strings.Contains(sourceBlob, w) {
			missing++
		}
	}
	return float64(missing) / float64(len(words))
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

var evalWordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

var evalStopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "they": {}, "their": {},
	"have": {}, "were": {}, "been": {}, "which": {}, "about": {}, "there": {},
	"said": {}, "quote": {}, "quotes": {}, "also": {}, "more": {}, "most": {},
}

func contentWords(text string) []string {
	var out []string
	for _, w := range evalWordPattern.FindAllString(text, -1) {
		if _, stop := evalStopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// AnalysisQuality scores an analytical answer by coverage of the aspects a
// thorough analysis touches: meaning, historical setting, themes, and
// present-day relevance. Plain retrieval answers score 0.
func AnalysisQuality(answer string) float64 {
	lower := strings.ToLower(answer)
	if strings.TrimSpace(lower) == "" {
		return 0
	}
	aspects := [][]string{
		{"mean", "interpret", "suggest", "convey", "signif"},
		{"histor", "era", "period", "context", "time"},
		{"theme", "idea", "concept", "value"},
		{"today", "modern", "relevan", "still", "contemporary"},
	}
	covered := 0
	for _, aspect := range aspects {
		for _, marker := range aspect {
			if strings.Contains(lower, marker) {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(aspects))
}
