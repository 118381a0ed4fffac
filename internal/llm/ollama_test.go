package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

func TestOllamaComplete(t *testing.T) {
	var gotReq ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message:         ollamaMessage{Role: "assistant", Content: "Hello!"},
			Model:           "llama3",
			Done:            true,
			DoneReason:      "stop",
			PromptEvalCount: 12,
			EvalCount:       4,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", srv.Client())
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages:    []Message{{Role: RoleUser, Content: "Hi"}},
		Temperature: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "Hello!" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.InputTokens != 12 || resp.OutputTokens != 4 {
		t.Errorf("tokens = %d/%d", resp.InputTokens, resp.OutputTokens)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("finish reason = %q", resp.FinishReason)
	}

	if gotReq.Model != "llama3" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("streaming must be disabled")
	}
	if gotReq.Options.Temperature != 0.5 {
		t.Errorf("temperature = %g", gotReq.Options.Temperature)
	}
}

func TestOllamaCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   provider.ErrorKind
	}{
		{"model not found", http.StatusNotFound, provider.KindModelNotFound},
		{"authentication", http.StatusUnauthorized, provider.KindAuthentication},
		{"server error", http.StatusInternalServerError, provider.KindAPIGeneric},
		{"unavailable", http.StatusServiceUnavailable, provider.KindConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			p := NewOllamaProvider(srv.URL, "llama3", srv.Client())
			_, err := p.Complete(context.Background(), CompletionRequest{
				Messages: []Message{{Role: RoleUser, Content: "Hi"}},
			})
			if !provider.IsKind(err, tt.want) {
				t.Errorf("got %v, want kind %v", err, tt.want)
			}
		})
	}
}

func TestOllamaConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more

	p := NewOllamaProvider(srv.URL, "llama3", nil)
	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	if !provider.IsKind(err, provider.KindConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
}
