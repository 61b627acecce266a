package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When req.Schema is set the response Content is JSON that has been
	// validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// Purpose labels the call in the request log, e.g. "question-gen".
	Purpose string

	System   string
	Messages []Message

	// Schema is the JSON Schema the response must conform to. Providers
	// use their native structured output mechanism for it. When nil, the
	// response Content is the raw text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness (0.0-1.0). Zero leaves the vendor
	// default in place.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema to vendors that require one (OpenAI's
	// json_schema name). Kebab-case, e.g. "cebraspe-quiz".
	Name        string
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Stop reasons, normalized across vendors.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopFiltered  = "filtered"
)

// Response holds the LLM's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finalize turns raw vendor output into a Response. A truncated or
// filtered generation is an error even when some text came back, and
// schema requests are validated before they reach the caller.
func finalize(req Request, content json.RawMessage, stop string, usage Usage, model string) (*Response, error) {
	switch stop {
	case StopMaxTokens:
		return nil, &ErrMaxTokensExceeded{Content: content}
	case StopFiltered:
		return nil, &ErrInvalidResponse{Content: content, Err: errContentFiltered}
	}
	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
