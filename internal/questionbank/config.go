package questionbank

// Config controls the behavior of the LLMProvider.
type Config struct {
	// Validators run in order over the whole bank; the first failure
	// rejects it.
	Validators []Validator

	// MaxTokensPerQuestion scales the response budget with the request size.
	MaxTokensPerQuestion int

	// MinTokens is the floor of the response budget.
	MinTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&CountValidator{},
			&StructuralValidator{},
			&SubjectValidator{},
		},
		MaxTokensPerQuestion: 700,
		MinTokens:            4096,
		Temperature:          0.7,
	}
}

func (c Config) maxTokens(questionCount int) int {
	n := c.MaxTokensPerQuestion * questionCount
	if n < c.MinTokens {
		return c.MinTokens
	}
	return n
}
