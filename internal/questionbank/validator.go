package questionbank

import (
	"fmt"

	"github.com/abhisek/simulado/internal/exam"
)

// Validator checks a generated bank before it reaches a session.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural", "count".
	Name() string

	// Validate returns nil if the bank passes.
	Validate(qs []exam.Question, cfg exam.QuizConfig) *ValidationError
}

// ValidationError describes why a bank failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// CountValidator requires exactly the requested number of questions.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(qs []exam.Question, cfg exam.QuizConfig) *ValidationError {
	if len(qs) != cfg.QuestionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", cfg.QuestionCount, len(qs)),
			Retryable: true,
		}
	}
	return nil
}

// StructuralValidator applies the per-question invariants: five non-empty
// options, a correct index in range, a known difficulty and non-empty text.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []exam.Question, _ exam.QuizConfig) *ValidationError {
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   err.Error(),
				Retryable: true,
			}
		}
	}
	return nil
}

// SubjectValidator rejects questions outside the requested subjects.
type SubjectValidator struct{}

func (v *SubjectValidator) Name() string { return "subject" }

func (v *SubjectValidator) Validate(qs []exam.Question, cfg exam.QuizConfig) *ValidationError {
	for _, q := range qs {
		if !cfg.Includes(q.Subject) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: subject %q was not requested", q.ID, q.Subject),
				Retryable: true,
			}
		}
	}
	return nil
}

func runValidators(vs []Validator, qs []exam.Question, cfg exam.QuizConfig) error {
	for _, v := range vs {
		if verr := v.Validate(qs, cfg); verr != nil {
			return verr
		}
	}
	return nil
}
