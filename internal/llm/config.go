package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "gemini" (default), "openai", "anthropic",
	// "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries. A 50-question
	// bank is a long generation, so the default is generous.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     20 * time.Second,
			Multiplier:  2,
		},
		Timeout: 180 * time.Second,
	}
}

// envBindings returns the SIMULADO_* variables and the fields they set.
func (c *Config) envBindings() map[string]*string {
	return map[string]*string{
		"SIMULADO_LLM_PROVIDER":        &c.Provider,
		"SIMULADO_ANTHROPIC_API_KEY":   &c.Anthropic.APIKey,
		"SIMULADO_ANTHROPIC_MODEL":     &c.Anthropic.Model,
		"SIMULADO_OPENAI_API_KEY":      &c.OpenAI.APIKey,
		"SIMULADO_OPENAI_MODEL":        &c.OpenAI.Model,
		"SIMULADO_OPENAI_BASE_URL":     &c.OpenAI.BaseURL,
		"SIMULADO_GEMINI_API_KEY":      &c.Gemini.APIKey,
		"SIMULADO_GEMINI_MODEL":        &c.Gemini.Model,
		"SIMULADO_GEMINI_BASE_URL":     &c.Gemini.BaseURL,
		"SIMULADO_OPENROUTER_API_KEY":  &c.OpenRouter.APIKey,
		"SIMULADO_OPENROUTER_MODEL":    &c.OpenRouter.Model,
		"SIMULADO_OPENROUTER_BASE_URL": &c.OpenRouter.BaseURL,
	}
}

// ConfigFromEnv overlays SIMULADO_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for key, field := range cfg.envBindings() {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
	if d, err := time.ParseDuration(os.Getenv("SIMULADO_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if d, err := time.ParseDuration(os.Getenv("SIMULADO_LLM_MAX_RETRY_WAIT")); err == nil && d > 0 {
		cfg.Retry.MaxWait = d
	}
	return cfg
}

// apiKey returns the key of the selected provider. The mock needs none.
func (c Config) apiKey() (key string, known bool) {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey, true
	case "openai":
		return c.OpenAI.APIKey, true
	case "gemini":
		return c.Gemini.APIKey, true
	case "openrouter":
		return c.OpenRouter.APIKey, true
	case "mock":
		return "-", true
	}
	return "", false
}

func (c Config) configured() bool {
	key, _ := c.apiKey()
	return key != ""
}

// vendorKeys lists the conventional API key variables in discovery order.
var vendorKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", "gemini"},
	{"GOOGLE_API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig picks the first provider whose conventional key variable
// is set. Model overrides from SIMULADO_* still apply.
func DiscoverConfig() (Config, bool) {
	for _, vk := range vendorKeys {
		key := os.Getenv(vk.env)
		if key == "" {
			continue
		}
		cfg := ConfigFromEnv()
		cfg.Provider = vk.provider
		switch vk.provider {
		case "gemini":
			cfg.Gemini.APIKey = key
		case "openai":
			cfg.OpenAI.APIKey = key
		case "anthropic":
			cfg.Anthropic.APIKey = key
		case "openrouter":
			cfg.OpenRouter.APIKey = key
		}
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has its key.
func (c Config) Validate() error {
	key, known := c.apiKey()
	if !known {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("SIMULADO_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
