package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/llm"
)

// Purpose labels question generation calls in the LLM event log.
const Purpose = "question-gen"

// LLMProvider implements Provider by asking an LLM for a whole bank in a
// single structured-output request.
type LLMProvider struct {
	provider llm.Provider
	config   Config
}

// NewLLMProvider creates an LLMProvider with the given LLM and config.
func NewLLMProvider(provider llm.Provider, cfg Config) *LLMProvider {
	return &LLMProvider{provider: provider, config: cfg}
}

// bankOutput is the raw LLM response before validation.
type bankOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	ID           int      `json:"id"`
	Subject      string   `json:"subject"`
	Difficulty   string   `json:"difficulty"`
	Statement    string   `json:"statement"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

func (p *LLMProvider) Generate(ctx context.Context, cfg exam.QuizConfig) ([]exam.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	req := llm.Request{
		Purpose: Purpose,
		System:  systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(cfg)},
		},
		Schema:      BankSchema(cfg),
		MaxTokens:   p.config.maxTokens(cfg.QuestionCount),
		Temperature: p.config.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fail("canceled", ctx.Err())
		}
		return nil, fail(reasonFor(err), err)
	}

	var raw bankOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fail("parse", fmt.Errorf("decode bank: %w", err))
	}

	qs, err := toQuestions(raw.Questions, cfg)
	if err != nil {
		return nil, fail("parse", err)
	}
	qs = renumber(qs)

	if err := runValidators(p.config.Validators, qs, cfg); err != nil {
		return nil, fail("validation", err)
	}
	return qs, nil
}

func toQuestions(raw []questionOutput, cfg exam.QuizConfig) ([]exam.Question, error) {
	out := make([]exam.Question, 0, len(raw))
	for i, r := range raw {
		subject, err := exam.ParseSubject(r.Subject)
		if err != nil {
			// A single requested subject is unambiguous even when the
			// model paraphrases its label.
			if len(cfg.Subjects) != 1 {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
			subject = cfg.Subjects[0]
		}
		difficulty, err := exam.ParseDifficulty(r.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		out = append(out, exam.Question{
			ID:           r.ID,
			Subject:      subject,
			Difficulty:   difficulty,
			Statement:    r.Statement,
			Options:      r.Options,
			CorrectIndex: r.CorrectIndex,
			Explanation:  r.Explanation,
		})
	}
	return out, nil
}

func reasonFor(err error) string {
	var (
		invalid   *llm.ErrInvalidResponse
		truncated *llm.ErrMaxTokensExceeded
		limited   *llm.ErrRateLimit
		rejected  *llm.ErrRequestRejected
	)
	switch {
	case errors.As(err, &invalid):
		return "schema"
	case errors.As(err, &truncated):
		return "truncated"
	case errors.As(err, &limited):
		return "rate-limit"
	case errors.As(err, &rejected):
		return "rejected"
	}
	return "transport"
}
