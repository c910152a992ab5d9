package vectorstore

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestNewQdrantStore_InvalidURL(t *testing.T) {
	if _, err := NewQdrantStore("://invalid"); err == nil {
		t.Error("NewQdrantStore() expected error for invalid URL")
	}
}

func TestPointIDString(t *testing.T) {
	tests := []struct {
		name string
		id   *qdrant.PointId
		want string
	}{
		{"nil id", nil, ""},
		{"uuid id", qdrant.NewID("abc-123"), "abc-123"},
		{"numeric id", qdrant.NewIDNum(42), "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointIDString(tt.id); got != tt.want {
				t.Errorf("pointIDString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertValue(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"id":     7,
		"quote":  "Knowledge is power.",
		"score":  0.5,
		"listed": []any{"a", "b"},
	})

	converted := convertPayloadToMap(payload)

	if got, ok := converted["id"].(int64); !ok || got != 7 {
		t.Errorf("converted id = %v (%T), want int64 7", converted["id"], converted["id"])
	}
	if got, ok := converted["quote"].(string); !ok || got != "Knowledge is power." {
		t.Errorf("converted quote = %v, want string", converted["quote"])
	}
	if got, ok := converted["score"].(float64); !ok || got != 0.5 {
		t.Errorf("converted score = %v, want 0.5", converted["score"])
	}
	list, ok := converted["listed"].([]any)
	if !ok || len(list) != 2 || list[0] != "a" {
		t.Errorf("converted listed = %v, want [a b]", converted["listed"])
	}
}
