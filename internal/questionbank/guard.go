package questionbank

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/simulado/internal/exam"
)

// ErrGenerationInFlight is returned when a second generation is requested
// while one is still running on the same Guard.
var ErrGenerationInFlight = errors.New("a quiz generation is already in progress")

// Guard lets at most one generation run at a time.
type Guard struct {
	inner Provider

	mu   sync.Mutex
	busy bool
}

// NewGuard wraps inner.
func NewGuard(inner Provider) *Guard {
	return &Guard{inner: inner}
}

func (g *Guard) Generate(ctx context.Context, cfg exam.QuizConfig) ([]exam.Question, error) {
	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	g.busy = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
	}()

	return g.inner.Generate(ctx, cfg)
}

// Busy reports whether a generation is running.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
