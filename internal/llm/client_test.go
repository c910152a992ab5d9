package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Generate(t *testing.T) {
	tests := []struct {
		name       string
		maxTokens  int
		serverResp func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want       string
		wantErr    bool
	}{
		{
			name:      "successful generation",
			maxTokens: 200,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/chat/completions" {
					t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
				}

				var req ChatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if req.MaxTokens != 200 {
					t.Errorf("request MaxTokens = %d, want 200", req.MaxTokens)
				}
				if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
					t.Errorf("request messages = %+v, want single user message", req.Messages)
				}

				resp := ChatResponse{
					Choices: []ChatChoice{
						{Message: ChatChoiceMessage{Role: "assistant", Content: "Roosevelt said it in 1933."}},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			want: "Roosevelt said it in 1933.",
		},
		{
			name: "no max tokens omits field",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				var req ChatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if req.MaxTokens != 0 {
					t.Errorf("request MaxTokens = %d, want 0", req.MaxTokens)
				}

				resp := ChatResponse{
					Choices: []ChatChoice{{Message: ChatChoiceMessage{Content: "ok"}}},
				}
				_ = json.NewEncoder(w).Encode(resp)
			},
			want: "ok",
		},
		{
			name: "empty choices",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(ChatResponse{})
			},
			wantErr: true,
		},
		{
			name: "server error",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model")
			got, err := client.Generate(context.Background(), "What did Roosevelt say about fear?", tt.maxTokens)

			if tt.wantErr {
				if err == nil {
					t.Error("Generate() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}
