package session

import "github.com/abhisek/simulado/internal/scoring"

// Retry starts a new session over the questions prev got wrong or left
// blank, keeping their IDs and order. prev must be finished.
func Retry(prev *Session) (*Session, error) {
	r, ok := prev.Result()
	if !ok {
		return nil, ErrNotFinished
	}
	wrong := scoring.SelectWrong(prev.questions, r)
	if len(wrong) == 0 {
		return nil, scoring.ErrNothingToRetry
	}
	return New(wrong)
}
