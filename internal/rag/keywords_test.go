package rag

import (
	"reflect"
	"testing"
)

func TestExtract_AuthorAliases(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("What did Roosevelt say about fear?")

	want := map[string]bool{
		"roosevelt": true, "franklin": true, "fdr": true,
		"fear": true, "afraid": true, "scared": true, "frightened": true,
	}
	for kw := range want {
		if !containsKeyword(got.Keywords, kw) {
			t.Errorf("Extract() missing keyword %q, got %v", kw, got.Keywords)
		}
	}
}

func TestExtract_AliasTriggersCanonical(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("quotes by FDR")

	// matching an alias must pull in the canonical author term too
	if !containsKeyword(got.Keywords, "roosevelt") {
		t.Errorf("Extract(\"quotes by FDR\") missing canonical %q, got %v", "roosevelt", got.Keywords)
	}
}

func TestExtract_StopWordsFiltered(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("What did the who say about some things?")

	for _, stop := range []string{"what", "did", "the", "about", "some"} {
		if containsKeyword(got.Keywords, stop) {
			t.Errorf("Extract() kept stopword %q in %v", stop, got.Keywords)
		}
	}
	if !containsKeyword(got.Keywords, "things") {
		t.Errorf("Extract() dropped residual token %q, got %v", "things", got.Keywords)
	}
}

func TestExtract_ShortTokensDropped(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("is it so go up")

	if len(got.Keywords) != 0 {
		t.Errorf("Extract() = %v, want no keywords for tokens under 3 letters", got.Keywords)
	}
}

func TestExtract_NoDuplicates(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("fear fear fear of fear")

	seen := map[string]int{}
	for _, kw := range got.Keywords {
		seen[kw]++
		if seen[kw] > 1 {
			t.Errorf("Extract() returned duplicate keyword %q: %v", kw, got.Keywords)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := NewExtractor(nil)

	first := e.Extract("quotes about courage and hope from Churchill")
	for i := 0; i < 10; i++ {
		again := e.Extract("quotes about courage and hope from Churchill")
		if !reflect.DeepEqual(first.Keywords, again.Keywords) {
			t.Fatalf("Extract() keyword order varies: %v vs %v", first.Keywords, again.Keywords)
		}
	}
}

func TestDetectIntent(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name     string
		question string
		want     IntentType
	}{
		{"plain retrieval", "Who said the only thing we have to fear is fear itself?", IntentRetrieval},
		{"interpretation", "What does Einstein's quote about imagination mean?", IntentInterpretation},
		{"historical", "What was the historical context of the Gettysburg Address?", IntentHistorical},
		{"comparison", "Compare the quotes by Lincoln and Churchill", IntentComparison},
		{"interpretation wins over historical", "Explain the meaning and historical context of this quote", IntentInterpretation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.question).Intent
			if got.Type != tt.want {
				t.Errorf("Extract(%q).Intent.Type = %q, want %q", tt.question, got.Type, tt.want)
			}
		})
	}
}

func TestDetectIntent_FlagsIndependent(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("Explain the meaning and historical background of these similar quotes").Intent

	if !got.Interpretation || !got.Historical || !got.Comparison {
		t.Errorf("Intent flags = %+v, want all three set", got)
	}
	if got.Type != IntentInterpretation {
		t.Errorf("Intent.Type = %q, want interpretation to take priority", got.Type)
	}
}

func containsKeyword(keywords []string, want string) bool {
	for _, kw := range keywords {
		if kw == want {
			return true
		}
	}
	return false
}
