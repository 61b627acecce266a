package scoring

import (
	"errors"

	"github.com/abhisek/simulado/internal/exam"
)

// PenaltyFactor is the fraction of a point lost for every wrong answer.
const PenaltyFactor = 0.25

// ErrNothingToRetry is returned by callers of SelectWrong when every
// question was answered correctly.
var ErrNothingToRetry = errors.New("no wrong or blank questions to retry")

// SubjectScore aggregates results for one subject.
type SubjectScore struct {
	Subject exam.Subject `json:"subject"`
	Total   int          `json:"total"`
	Correct int          `json:"correct"`
}

// Tally is the raw outcome of scoring a set of answers.
type Tally struct {
	TotalQuestions int
	CorrectAnswers int
	AnsweredCount  int
	BySubject      []SubjectScore
}

// Score counts correct answers overall and per subject. Subjects appear in
// the order they are first encountered in questions. Answers whose key is
// not a question ID are ignored.
func Score(questions []exam.Question, answers map[int]int) Tally {
	t := Tally{TotalQuestions: len(questions)}
	index := make(map[exam.Subject]int)

	for _, q := range questions {
		i, ok := index[q.Subject]
		if !ok {
			i = len(t.BySubject)
			index[q.Subject] = i
			t.BySubject = append(t.BySubject, SubjectScore{Subject: q.Subject})
		}
		t.BySubject[i].Total++

		chosen, answered := answers[q.ID]
		if !answered {
			continue
		}
		t.AnsweredCount++
		if chosen == q.CorrectIndex {
			t.CorrectAnswers++
			t.BySubject[i].Correct++
		}
	}
	return t
}

// NetScore is the Cebraspe net score: each wrong answer cancels a quarter
// of a correct one and blanks cost nothing.
type NetScore struct {
	Correct int     `json:"correct"`
	Wrong   int     `json:"wrong"`
	Blank   int     `json:"blank"`
	Value   float64 `json:"value"`
}

// Net computes the net score. The value is not clamped and may be negative.
func Net(total, correct, answered int) NetScore {
	wrong := answered - correct
	return NetScore{
		Correct: correct,
		Wrong:   wrong,
		Blank:   total - answered,
		Value:   float64(correct) - float64(wrong)*PenaltyFactor,
	}
}

// Result is the frozen outcome of a finished session.
type Result struct {
	TotalQuestions int            `json:"totalQuestions"`
	CorrectAnswers int            `json:"correctAnswers"`
	ScoreBySubject []SubjectScore `json:"scoreBySubject"`
	Answers        map[int]int    `json:"answers"`
	TimeElapsed    int            `json:"timeElapsed"`
}

// NewResult scores answers and snapshots the ones that belong to questions.
// The returned Result does not share the answers map with the caller.
func NewResult(questions []exam.Question, answers map[int]int, elapsed int) Result {
	t := Score(questions, answers)
	snap := make(map[int]int, t.AnsweredCount)
	for _, q := range questions {
		if chosen, ok := answers[q.ID]; ok {
			snap[q.ID] = chosen
		}
	}
	return Result{
		TotalQuestions: t.TotalQuestions,
		CorrectAnswers: t.CorrectAnswers,
		ScoreBySubject: t.BySubject,
		Answers:        snap,
		TimeElapsed:    elapsed,
	}
}

// Net returns the net score of the result.
func (r Result) Net() NetScore {
	return Net(r.TotalQuestions, r.CorrectAnswers, len(r.Answers))
}

// Subject returns the aggregate for s, if any question had that subject.
func (r Result) Subject(s exam.Subject) (SubjectScore, bool) {
	for _, ss := range r.ScoreBySubject {
		if ss.Subject == s {
			return ss, true
		}
	}
	return SubjectScore{}, false
}

// SelectWrong returns, in their original order, the questions that were
// not answered correctly. Blank questions count as not correct.
func SelectWrong(questions []exam.Question, r Result) []exam.Question {
	var out []exam.Question
	for _, q := range questions {
		if chosen, ok := r.Answers[q.ID]; ok && chosen == q.CorrectIndex {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Outcome classifies a single question for review.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeBlank   Outcome = "blank"
)

// OutcomeOf reports how q was answered.
func OutcomeOf(q exam.Question, answers map[int]int) Outcome {
	chosen, ok := answers[q.ID]
	switch {
	case !ok:
		return OutcomeBlank
	case chosen == q.CorrectIndex:
		return OutcomeCorrect
	default:
		return OutcomeWrong
	}
}
