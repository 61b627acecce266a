package questionbank

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/simulado/internal/exam"
)

// Provider supplies the questions for a quiz.
type Provider interface {
	// Generate returns exactly cfg.QuestionCount questions drawn from the
	// requested subjects, with IDs 1..n in order. Any failure is reported
	// as a *ProviderFailure.
	Generate(ctx context.Context, cfg exam.QuizConfig) ([]exam.Question, error)
}

// FailureMessage is shown to the user whenever a bank cannot be produced.
const FailureMessage = "Falha ao gerar o simulado. Tente novamente ou verifique sua chave de API."

// ErrProviderFailure matches every *ProviderFailure via errors.Is.
var ErrProviderFailure = errors.New("question provider failure")

// ProviderFailure wraps the underlying cause of a failed generation.
type ProviderFailure struct {
	Reason string // short machine-facing reason, e.g. "transport", "validation"
	Err    error
}

func (e *ProviderFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("question provider failure (%s)", e.Reason)
	}
	return fmt.Sprintf("question provider failure (%s): %v", e.Reason, e.Err)
}

func (e *ProviderFailure) Unwrap() error { return e.Err }

func (e *ProviderFailure) Is(target error) bool { return target == ErrProviderFailure }

// UserMessage returns the text presented to the user.
func (e *ProviderFailure) UserMessage() string { return FailureMessage }

func fail(reason string, err error) error {
	var pf *ProviderFailure
	if errors.As(err, &pf) {
		return err
	}
	return &ProviderFailure{Reason: reason, Err: err}
}

type unavailable struct {
	reason string
	err    error
}

// Unavailable returns a Provider whose every call fails with a
// *ProviderFailure carrying reason and err. It stands in for a provider
// that could not be built, e.g. when no API key is configured.
func Unavailable(reason string, err error) Provider {
	return unavailable{reason: reason, err: err}
}

func (u unavailable) Generate(ctx context.Context, _ exam.QuizConfig) ([]exam.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, fail(u.reason, u.err)
}

// renumber assigns sequential IDs starting at 1, ignoring upstream numbering.
func renumber(qs []exam.Question) []exam.Question {
	out := make([]exam.Question, len(qs))
	for i, q := range qs {
		q.ID = i + 1
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
