package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/simulado/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}

// TimeoutProvider bounds a whole Generate call, retries included.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a deadline. A zero timeout disables it.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}

// NewProviderFromEnv builds a provider from SIMULADO_* variables. When the
// selected provider has no key, it falls back to the standard vendor key
// variables (GEMINI_API_KEY, OPENAI_API_KEY, ...).
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if !cfg.configured() {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, fmt.Errorf("no LLM API key found: set SIMULADO_GEMINI_API_KEY or GEMINI_API_KEY")
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	p, err := NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
