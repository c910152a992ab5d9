package rag

import "testing"

func TestEffectiveTopK(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		requested int
		intent    Intent
		mode      AnalysisMode
		want      int
	}{
		{
			name:      "who said narrows to one",
			question:  "Who said the only thing we have to fear is fear itself?",
			requested: 5,
			mode:      ModeStandard,
			want:      1,
		},
		{
			name:      "what did narrows to one",
			question:  "What did Einstein say about imagination?",
			requested: 5,
			mode:      ModeStandard,
			want:      1,
		},
		{
			name:      "quoted fragment narrows to one",
			question:  `Find "I have a dream"`,
			requested: 5,
			mode:      ModeStandard,
			want:      1,
		},
		{
			name:      "single-quoted fragment narrows to one",
			question:  "Find the origin of 'fear itself'",
			requested: 5,
			mode:      ModeStandard,
			want:      1,
		},
		{
			name:      "possessive apostrophe narrows to one",
			question:  "Explain the meaning of Gandhi's philosophy",
			requested: 5,
			mode:      ModeStandard,
			want:      1,
		},
		{
			name:      "dream about narrows to one",
			question:  "What was the speech where MLK talked dream about equality?",
			requested: 5,
			mode:      ModeStandard,
			want:      1,
		},
		{
			name:      "topic browse keeps requested",
			question:  "Are there quotes about courage?",
			requested: 5,
			mode:      ModeStandard,
			want:      5,
		},
		{
			name:      "quotes word disables what-did narrowing",
			question:  "What did people collect, some quotes about hope?",
			requested: 4,
			mode:      ModeStandard,
			want:      4,
		},
		{
			name:      "comprehensive analysis clamps high requests",
			question:  "Explain the meaning of the Gandhi philosophy of change",
			requested: 10,
			intent:    Intent{Type: IntentInterpretation, Interpretation: true},
			mode:      ModeComprehensive,
			want:      3,
		},
		{
			name:      "comprehensive analysis raises a low request",
			question:  "Explain the meaning of the Gandhi philosophy of change",
			requested: 1,
			intent:    Intent{Type: IntentInterpretation, Interpretation: true},
			mode:      ModeComprehensive,
			want:      2,
		},
		{
			name:      "plain question keeps requested",
			question:  "Tell me things Lincoln believed",
			requested: 3,
			mode:      ModeStandard,
			want:      3,
		},
		{
			name:      "zero requested becomes one",
			question:  "Tell me things Lincoln believed",
			requested: 0,
			mode:      ModeStandard,
			want:      1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveTopK(tt.question, tt.requested, tt.intent, tt.mode)
			if got != tt.want {
				t.Errorf("EffectiveTopK(%q, %d, %s) = %d, want %d",
					tt.question, tt.requested, tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseAnalysisMode(t *testing.T) {
	tests := []struct {
		in   string
		want AnalysisMode
	}{
		{"basic", ModeBasic},
		{"standard", ModeStandard},
		{"comprehensive", ModeComprehensive},
		{"comparative", ModeComparative},
		{"COMPREHENSIVE", ModeComprehensive},
		{"  basic ", ModeBasic},
		{"", ModeStandard},
		{"detailed", ModeStandard},
	}
	for _, tt := range tests {
		if got := ParseAnalysisMode(tt.in); got != tt.want {
			t.Errorf("ParseAnalysisMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
