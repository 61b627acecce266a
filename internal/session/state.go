package session

import (
	"errors"
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/scoring"
)

var (
	ErrEmptySession    = errors.New("session needs at least one question")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidOption   = errors.New("option index out of range")
	ErrOutOfRange      = errors.New("question index out of range")
	ErrFinished        = errors.New("session already finished")
	ErrNotFinished     = errors.New("session not finished")
	ErrInvalidQuestion = errors.New("invalid question")
)

// Direction is a relative navigation step.
type Direction int

const (
	Next Direction = iota + 1
	Prev
)

// ParseDirection maps "next"/"prev" to a Direction.
func ParseDirection(v string) (Direction, error) {
	switch v {
	case "next":
		return Next, nil
	case "prev", "previous":
		return Prev, nil
	}
	return 0, fmt.Errorf("unknown direction %q", v)
}

// Session holds the state of one quiz attempt. It is not safe for
// concurrent use; callers that share a Session across goroutines must
// serialize access.
type Session struct {
	id        string
	questions []exam.Question
	positions map[int]int // question ID -> index

	current  int
	answers  map[int]int
	flags    map[int]bool
	elapsed  int
	finished bool
	result   scoring.Result
}

// New starts a session over questions. Question IDs must be unique and
// every question must pass exam.Question.Validate.
func New(questions []exam.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptySession
	}
	positions := make(map[int]int, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
		}
		if _, dup := positions[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		positions[q.ID] = i
	}
	return &Session{
		id:        uuid.New().String(),
		questions: append([]exam.Question(nil), questions...),
		positions: positions,
		answers:   make(map[int]int),
		flags:     make(map[int]bool),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Select records optionIndex as the answer to questionID, replacing any
// previous answer. It does not move the cursor.
func (s *Session) Select(questionID, optionIndex int) error {
	if s.finished {
		return ErrFinished
	}
	pos, ok := s.positions[questionID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if optionIndex < 0 || optionIndex >= len(s.questions[pos].Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}
	s.answers[questionID] = optionIndex
	return nil
}

// ToggleFlag marks or unmarks a question for review.
func (s *Session) ToggleFlag(questionID int) error {
	if s.finished {
		return ErrFinished
	}
	if _, ok := s.positions[questionID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if s.flags[questionID] {
		delete(s.flags, questionID)
	} else {
		s.flags[questionID] = true
	}
	return nil
}

// Navigate moves one step. Moving past either end is a no-op.
func (s *Session) Navigate(d Direction) {
	if s.finished {
		return
	}
	switch d {
	case Next:
		if s.current < len(s.questions)-1 {
			s.current++
		}
	case Prev:
		if s.current > 0 {
			s.current--
		}
	}
}

// JumpTo moves the cursor to index. An index outside the question list
// returns ErrOutOfRange and leaves the cursor where it was.
func (s *Session) JumpTo(index int) error {
	if s.finished {
		return ErrFinished
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	s.current = index
	return nil
}

// Tick advances the elapsed clock by one second.
func (s *Session) Tick() {
	if s.finished {
		return
	}
	s.elapsed++
}

// ProgressFraction is the share of questions that have an answer.
func (s *Session) ProgressFraction() float64 {
	return float64(len(s.answers)) / float64(len(s.questions))
}

// Finish freezes the session and returns its result. Later calls return
// the same result.
func (s *Session) Finish() scoring.Result {
	if !s.finished {
		s.result = scoring.NewResult(s.questions, s.answers, s.elapsed)
		s.finished = true
	}
	return s.resultCopy()
}

// Finished reports whether Finish has been called.
func (s *Session) Finished() bool { return s.finished }

// Result returns the frozen result and true once the session is finished.
func (s *Session) Result() (scoring.Result, bool) {
	if !s.finished {
		return scoring.Result{}, false
	}
	return s.resultCopy(), true
}

func (s *Session) resultCopy() scoring.Result {
	r := s.result
	r.Answers = maps.Clone(s.result.Answers)
	r.ScoreBySubject = append([]scoring.SubjectScore(nil), s.result.ScoreBySubject...)
	return r
}

func (s *Session) Current() exam.Question { return s.questions[s.current] }
func (s *Session) CurrentIndex() int      { return s.current }
func (s *Session) Len() int               { return len(s.questions) }
func (s *Session) Elapsed() int           { return s.elapsed }
func (s *Session) AnsweredCount() int     { return len(s.answers) }

// Questions returns a copy of the question list in session order.
func (s *Session) Questions() []exam.Question {
	return append([]exam.Question(nil), s.questions...)
}

// Answer returns the option chosen for questionID, if any.
func (s *Session) Answer(questionID int) (int, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// Answers returns a copy of the answer map.
func (s *Session) Answers() map[int]int {
	out := make(map[int]int, len(s.answers))
	maps.Copy(out, s.answers)
	return out
}

func (s *Session) IsFlagged(questionID int) bool { return s.flags[questionID] }

// Flagged returns flagged question IDs in question order.
func (s *Session) Flagged() []int {
	var out []int
	for _, q := range s.questions {
		if s.flags[q.ID] {
			out = append(out, q.ID)
		}
	}
	return out
}
