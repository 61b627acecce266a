package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterAppURL         = "https://github.com/abhisek/simulado"
	openRouterAppTitle       = "Simulado"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible API. Model IDs
// are vendor-prefixed ("google/gemini-2.5-flash") and passed through as is.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	c := openaiClientConfig(cfg.APIKey, baseURL)
	c.HTTPClient = &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	return &OpenRouterProvider{OpenAIProvider: newChatProvider(c, cfg.Model)}, nil
}

// attributionTransport adds the headers OpenRouter uses to attribute
// traffic to an app.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterAppURL)
	r.Header.Set("X-Title", openRouterAppTitle)
	return t.base.RoundTrip(r)
}
