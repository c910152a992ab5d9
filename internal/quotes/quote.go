package quotes

import (
	"fmt"
	"strconv"

	"quotes-ai/internal/service"
)

// Quote is an immutable historical quote record. Records are created at
// data-load time and never mutated; deletion happens only by bulk reload.
// The analysis fields (Interpretation through ModernRelevance) are optional
// curated metadata; a zero value means the field is absent.
type Quote struct {
	ID       int      `json:"id"`
	Quote    string   `json:"quote"`
	Author   string   `json:"author"`
	Era      string   `json:"era,omitempty"`
	Topic    string   `json:"topic,omitempty"`
	Context  string   `json:"context,omitempty"`
	Source   string   `json:"source,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Language string   `json:"language,omitempty"`

	Interpretation         string   `json:"interpretation,omitempty"`
	HistoricalSignificance string   `json:"historical_significance,omitempty"`
	Themes                 string   `json:"themes,omitempty"`
	KeyPhrases             []string `json:"key_phrases,omitempty"`
	ModernRelevance        string   `json:"modern_relevance,omitempty"`
}

// Validate checks that the required fields (id, quote, author) are present.
func (q Quote) Validate() error {
	if q.ID <= 0 {
		return &service.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	if q.Quote == "" {
		return &service.ValidationError{Field: "quote", Message: "must not be empty"}
	}
	if q.Author == "" {
		return &service.ValidationError{Field: "author", Message: "must not be empty"}
	}
	return nil
}

// HasAnalysis reports whether the quote carries curated analysis fields.
func (q Quote) HasAnalysis() bool {
	return q.Interpretation != "" || q.HistoricalSignificance != ""
}

// EmbeddingText returns the text that document vectors are computed from.
func (q Quote) EmbeddingText() string {
	return q.Quote + " " + q.Author
}

// Payload converts the quote to a vector-store payload map.
func (q Quote) Payload() map[string]any {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	keyPhrases := q.KeyPhrases
	if keyPhrases == nil {
		keyPhrases = []string{}
	}
	return map[string]any{
		"id":                      q.ID,
		"quote":                   q.Quote,
		"author":                  q.Author,
		"era":                     q.Era,
		"topic":                   q.Topic,
		"context":                 q.Context,
		"source":                  q.Source,
		"tags":                    anySlice(tags),
		"language":                q.Language,
		"interpretation":          q.Interpretation,
		"historical_significance": q.HistoricalSignificance,
		"themes":                  q.Themes,
		"key_phrases":             anySlice(keyPhrases),
		"modern_relevance":        q.ModernRelevance,
	}
}

// FromPayload builds a Quote from a vector-store payload. A payload missing
// a required field (id, quote, author) yields ErrMalformedRecord; callers
// skip such records during ranking instead of failing the query.
func FromPayload(payload map[string]any) (Quote, error) {
	id, ok := payloadInt(payload["id"])
	if !ok || id <= 0 {
		return Quote{}, fmt.Errorf("%w: missing or invalid id", service.ErrMalformedRecord)
	}

	q := Quote{
		ID:                     id,
		Quote:                  payloadString(payload["quote"]),
		Author:                 payloadString(payload["author"]),
		Era:                    payloadString(payload["era"]),
		Topic:                  payloadString(payload["topic"]),
		Context:                payloadString(payload["context"]),
		Source:                 payloadString(payload["source"]),
		Tags:                   payloadStrings(payload["tags"]),
		Language:               payloadString(payload["language"]),
		Interpretation:         payloadString(payload["interpretation"]),
		HistoricalSignificance: payloadString(payload["historical_significance"]),
		Themes:                 payloadString(payload["themes"]),
		KeyPhrases:             payloadStrings(payload["key_phrases"]),
		ModernRelevance:        payloadString(payload["modern_relevance"]),
	}

	if q.Quote == "" {
		return Quote{}, fmt.Errorf("%w: missing quote text", service.ErrMalformedRecord)
	}
	if q.Author == "" {
		return Quote{}, fmt.Errorf("%w: missing author", service.ErrMalformedRecord)
	}

	return q, nil
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// payloadInt handles the numeric types that JSON decoding and the Qdrant
// payload conversion produce for integer fields.
func payloadInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func payloadString(v any) string {
	s, _ := v.(string)
	return s
}

func payloadStrings(v any) []string {
	switch vals := v.(type) {
	case []string:
		if len(vals) == 0 {
			return nil
		}
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
