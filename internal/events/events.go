// Package events announces quiz lifecycle transitions: it appends them to
// the session event log and publishes them to a message broker.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/report"
	"github.com/abhisek/simulado/internal/scoring"
	"github.com/abhisek/simulado/internal/store"
)

// Type is the routing key of a quiz event.
type Type string

const (
	QuizStarted  Type = "quiz.started"
	QuizFinished Type = "quiz.finished"
	QuizRetried  Type = "quiz.retried"
)

// QuizEvent is the message body published for every transition.
type QuizEvent struct {
	Type           Type      `json:"eventType"`
	SessionID      string    `json:"sessionId"`
	ParentID       string    `json:"parentId,omitempty"`
	Subjects       []string  `json:"subjects"`
	Questions      int       `json:"questions"`
	Answered       int       `json:"answered"`
	CorrectAnswers int       `json:"correctAnswers"`
	Percentage     int       `json:"percentage"`
	NetScore       float64   `json:"netScore"`
	DurationSecs   int       `json:"durationSecs"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Started builds the event for a freshly generated quiz.
func Started(sessionID string, questions []exam.Question) QuizEvent {
	return QuizEvent{
		Type:       QuizStarted,
		SessionID:  sessionID,
		Subjects:   subjectsOf(questions),
		Questions:  len(questions),
		OccurredAt: time.Now(),
	}
}

// Retried builds the event for a retry session derived from parentID.
func Retried(sessionID, parentID string, questions []exam.Question) QuizEvent {
	e := Started(sessionID, questions)
	e.Type = QuizRetried
	e.ParentID = parentID
	return e
}

// Finished builds the event for a completed session.
func Finished(sessionID string, questions []exam.Question, r scoring.Result) QuizEvent {
	return QuizEvent{
		Type:           QuizFinished,
		SessionID:      sessionID,
		Subjects:       subjectsOf(questions),
		Questions:      r.TotalQuestions,
		Answered:       len(r.Answers),
		CorrectAnswers: r.CorrectAnswers,
		Percentage:     report.Percentage(r.CorrectAnswers, r.TotalQuestions),
		NetScore:       r.Net().Value,
		DurationSecs:   r.TimeElapsed,
		OccurredAt:     time.Now(),
	}
}

// subjectsOf lists the distinct subject labels in first-seen order.
func subjectsOf(questions []exam.Question) []string {
	seen := make(map[exam.Subject]bool)
	var out []string
	for _, q := range questions {
		if !seen[q.Subject] {
			seen[q.Subject] = true
			out = append(out, q.Subject.String())
		}
	}
	return out
}

func (e QuizEvent) action() string {
	switch e.Type {
	case QuizFinished:
		return store.ActionFinish
	case QuizRetried:
		return store.ActionRetry
	}
	return store.ActionStart
}

// Recorder fans a quiz event out to the event log and the publisher.
// Either side may be nil. Failures are logged and never block the quiz.
type Recorder struct {
	repo      store.EventRepo
	publisher Publisher
}

// NewRecorder creates a Recorder.
func NewRecorder(repo store.EventRepo, publisher Publisher) *Recorder {
	return &Recorder{repo: repo, publisher: publisher}
}

// Record appends and publishes e.
func (r *Recorder) Record(ctx context.Context, e QuizEvent) {
	if r == nil {
		return
	}
	if r.repo != nil {
		err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      e.SessionID,
			ParentID:       e.ParentID,
			Action:         e.action(),
			Subjects:       e.Subjects,
			Questions:      e.Questions,
			Answered:       e.Answered,
			CorrectAnswers: e.CorrectAnswers,
			NetScore:       e.NetScore,
			DurationSecs:   e.DurationSecs,
		})
		if err != nil {
			fmt.Fprintf(warnOut, "warning: failed to record session event %s: %v\n", e.Type, err)
		}
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, &e); err != nil {
			fmt.Fprintf(warnOut, "warning: failed to publish %s: %v\n", e.Type, err)
		}
	}
}
