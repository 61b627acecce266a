package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(
		AnthropicConfig{APIKey: "test-key", Model: "claude-sonnet"},
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func anthropicMessage(text, stopReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := []map[string]any{}
		if text != "" {
			content = append(content, map[string]any{"type": "text", "text": text})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     content,
			"model":       "claude-sonnet-4-5-20250929",
			"stop_reason": stopReason,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func anthropicFailure(status int, retryAfter string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if retryAfter != "" {
			w.Header().Set("Retry-After", retryAfter)
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "error", "message": http.StatusText(status)},
		})
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		anthropicMessage(`{"statement":"A LRF limita a despesa com pessoal.","correctIndex":2}`, "end_turn")(w, r)
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "Você é um examinador da banca Cebraspe.",
		Messages:  []Message{{Role: RoleUser, Content: "Gere uma questão de Licitações."}},
		MaxTokens: 256,
		Schema:    &Schema{Name: "q", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("StopReason = %q, want %q", resp.StopReason, StopEnd)
	}
	if resp.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("Model = %q", resp.Model)
	}

	if body["model"] != "claude-sonnet-4-5" {
		t.Errorf("sent model = %v, want claude-sonnet-4-5", body["model"])
	}
	if _, ok := body["output_config"]; !ok {
		t.Error("schema request sent without output_config")
	}
}

func TestAnthropicProvider_StopReasons(t *testing.T) {
	t.Run("max tokens", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicMessage(`{"statement":"cut`, "max_tokens"))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var truncated *ErrMaxTokensExceeded
		if !errors.As(err, &truncated) {
			t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
		}
	})

	t.Run("refusal", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicMessage("", "refusal"))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		if !errors.Is(err, errContentFiltered) {
			t.Fatalf("expected content filtered, got: %T (%v)", err, err)
		}
	})

	t.Run("no text", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicMessage("", "end_turn"))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var invalid *ErrInvalidResponse
		if !errors.As(err, &invalid) {
			t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
		}
	})
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	t.Run("rate limit carries retry-after", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicFailure(http.StatusTooManyRequests, "4"))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
		}
		if rl.RetryAfter != 4*time.Second {
			t.Errorf("RetryAfter = %v, want 4s", rl.RetryAfter)
		}
	})

	t.Run("overloaded", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicFailure(529, ""))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicFailure(http.StatusUnauthorized, ""))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var rejected *ErrRequestRejected
		if !errors.As(err, &rejected) {
			t.Fatalf("expected ErrRequestRejected, got: %T (%v)", err, err)
		}
		if rejected.StatusCode != http.StatusUnauthorized {
			t.Errorf("StatusCode = %d", rejected.StatusCode)
		}
	})
}

func TestAnthropicProvider_ModelMapping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"claude-sonnet", "claude-sonnet-4-5"},
		{"claude-haiku", "claude-haiku-4-5"},
		{"claude-opus-4-1", "claude-opus-4-1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: tt.input})
			if err != nil {
				t.Fatal(err)
			}
			if p.ModelID() != tt.want {
				t.Errorf("ModelID() = %q, want %q", p.ModelID(), tt.want)
			}
		})
	}

	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Error("expected error without API key")
	}
}
