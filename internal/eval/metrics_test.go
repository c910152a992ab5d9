package eval

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestPrecisionRecall(t *testing.T) {
	tests := []struct {
		name          string
		retrieved     []int
		expected      []int
		wantPrecision float64
		wantRecall    float64
	}{
		{
			name:          "partial overlap",
			retrieved:     []int{1, 2, 4},
			expected:      []int{1, 2, 3},
			wantPrecision: 2.0 / 3.0,
			wantRecall:    2.0 / 3.0,
		},
		{
			name:          "perfect retrieval",
			retrieved:     []int{1, 2},
			expected:      []int{1, 2},
			wantPrecision: 1,
			wantRecall:    1,
		},
		{
			name:          "nothing retrieved",
			retrieved:     nil,
			expected:      []int{1},
			wantPrecision: 0,
			wantRecall:    0,
		},
		{
			name:          "nothing expected",
			retrieved:     []int{1, 2},
			expected:      nil,
			wantPrecision: 0,
			wantRecall:    0,
		},
		{
			name:          "nothing expected and nothing retrieved",
			retrieved:     nil,
			expected:      nil,
			wantPrecision: 0,
			wantRecall:    0,
		},
		{
			name:          "duplicate retrieved ids counted once",
			retrieved:     []int{1, 1, 1},
			expected:      []int{1, 2},
			wantPrecision: 1.0 / 3.0,
			wantRecall:    0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Precision(tt.retrieved, tt.expected); got != tt.wantPrecision {
				t.Errorf("Precision() = %v, want %v", got, tt.wantPrecision)
			}
			if got := Recall(tt.retrieved, tt.expected); got != tt.wantRecall {
				t.Errorf("Recall() = %v, want %v", got, tt.wantRecall)
			}
		})
	}
}

type fixedEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fixedEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func TestAnswerRelevance(t *testing.T) {
	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"identical": {1, 0},
		"opposite":  {-1, 0},
		"unrelated": {0, 1},
	}}

	got, err := AnswerRelevance(context.Background(), embedder, "identical", "identical")
	if err != nil {
		t.Fatalf("AnswerRelevance() error = %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("AnswerRelevance(identical) = %v, want 1", got)
	}

	got, _ = AnswerRelevance(context.Background(), embedder, "identical", "opposite")
	if math.Abs(got-0) > 1e-9 {
		t.Errorf("AnswerRelevance(opposite) = %v, want 0", got)
	}

	got, _ = AnswerRelevance(context.Background(), embedder, "identical", "unrelated")
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("AnswerRelevance(orthogonal) = %v, want 0.5", got)
	}
}

func TestAnswerRelevance_EmptyAndErrors(t *testing.T) {
	if got, err := AnswerRelevance(context.Background(), &fixedEmbedder{}, "", "expected"); got != 0 || err != nil {
		t.Errorf("AnswerRelevance(empty answer) = %v, %v, want 0, nil", got, err)
	}

	wantErr := errors.New("embedder down")
	got, err := AnswerRelevance(context.Background(), &fixedEmbedder{err: wantErr}, "a", "b")
	if got != 0 || !errors.Is(err, wantErr) {
		t.Errorf("AnswerRelevance(embedder error) = %v, %v", got, err)
	}
}

func TestHallucination_AbstentionScoresZero(t *testing.T) {
	answers := []string{
		"I cannot find that information in my knowledge base",
		"Sorry, that is not in my knowledge base.",
		"",
	}
	for _, answer := range answers {
		if got := Hallucination(answer, []string{"some source"}); got != 0 {
			t.Errorf("Hallucination(%q) = %v, want 0", answer, got)
		}
	}
}

func TestHallucination_GroundedAnswerScoresLow(t *testing.T) {
	sources := []string{
		"The only thing we have to fear is fear itself. Franklin D. Roosevelt said this during his 1933 inaugural address.",
	}
	answer := "Roosevelt said the only thing we have to fear is fear itself, during his 1933 inaugural address."

	if got := Hallucination(answer, sources); got != 0 {
		t.Errorf("Hallucination(grounded) = %v, want 0 after epsilon snap", got)
	}
}

func TestHallucination_FabricatedContentScoresHigh(t *testing.T) {
	sources := []string{"The only thing we have to fear is fear itself."}
	answer := "Napoleon Bonaparte proclaimed this triumphantly before conquering Austria in 1805, according to seventeen contemporary newspapers."

	got := Hallucination(answer, sources)
	if got < 0.3 {
		t.Errorf("Hallucination(fabricated) = %v, want a substantial score", got)
	}
	if got > 1 {
		t.Errorf("Hallucination() = %v, want clamped to 1", got)
	}
}

func TestHallucination_UnsupportedNumbersRaiseScore(t *testing.T) {
	sources := []string{"Lincoln delivered the Gettysburg Address."}
	withNumber := "Lincoln delivered the Gettysburg Address in 1863 to 15000 listeners."
	without := "Lincoln delivered the Gettysburg Address."

	if Hallucination(withNumber, sources) <= Hallucination(without, sources) {
		t.Errorf("unsupported numbers did not raise the hallucination score")
	}
}

func TestAnalysisQuality(t *testing.T) {
	full := "This quote means that courage matters. Its historical context was wartime. The central theme is resilience, and it is still relevant today."
	if got := AnalysisQuality(full); got != 1 {
		t.Errorf("AnalysisQuality(full coverage) = %v, want 1", got)
	}

	partial := "This quote means that courage matters."
	if got := AnalysisQuality(partial); got != 0.25 {
		t.Errorf("AnalysisQuality(one aspect) = %v, want 0.25", got)
	}

	if got := AnalysisQuality(""); got != 0 {
		t.Errorf("AnalysisQuality(empty) = %v, want 0", got)
	}
}
