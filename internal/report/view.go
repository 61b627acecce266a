package report

import (
	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/scoring"
	"github.com/abhisek/simulado/internal/session"
)

// QuestionView is a question as shown while the quiz is running. It never
// carries the correct answer or the explanation.
type QuestionView struct {
	ID         int             `json:"id"`
	Subject    exam.Subject    `json:"subject"`
	Difficulty exam.Difficulty `json:"difficulty"`
	Statement  string          `json:"statement"`
	Options    []string        `json:"options"`
	Selected   *int            `json:"selected,omitempty"`
	Flagged    bool            `json:"flagged"`
}

// SlotView is one cell of the question overview grid.
type SlotView struct {
	Index    int  `json:"index"`
	ID       int  `json:"id"`
	Answered bool `json:"answered"`
	Flagged  bool `json:"flagged"`
	Current  bool `json:"current"`
}

// SessionView is the state of a running session.
type SessionView struct {
	SessionID     string       `json:"sessionId"`
	Index         int          `json:"index"`
	Total         int          `json:"total"`
	Answered      int          `json:"answered"`
	Progress      float64      `json:"progress"`
	Elapsed       int          `json:"elapsedSeconds"`
	Clock         string       `json:"clock"`
	Finished      bool         `json:"finished"`
	Current       QuestionView `json:"current"`
	Overview      []SlotView   `json:"overview"`
	FlaggedIDs    []int        `json:"flagged"`
	CanGoPrevious bool         `json:"canGoPrevious"`
	CanGoNext     bool         `json:"canGoNext"`
}

// NewSessionView builds the view of s.
func NewSessionView(s *session.Session) SessionView {
	cur := s.Current()
	qv := QuestionView{
		ID:         cur.ID,
		Subject:    cur.Subject,
		Difficulty: cur.Difficulty,
		Statement:  cur.Statement,
		Options:    append([]string(nil), cur.Options...),
		Flagged:    s.IsFlagged(cur.ID),
	}
	if sel, ok := s.Answer(cur.ID); ok {
		qv.Selected = &sel
	}

	questions := s.Questions()
	overview := make([]SlotView, len(questions))
	for i, q := range questions {
		_, answered := s.Answer(q.ID)
		overview[i] = SlotView{
			Index:    i,
			ID:       q.ID,
			Answered: answered,
			Flagged:  s.IsFlagged(q.ID),
			Current:  i == s.CurrentIndex(),
		}
	}

	return SessionView{
		SessionID:     s.ID(),
		Index:         s.CurrentIndex(),
		Total:         s.Len(),
		Answered:      s.AnsweredCount(),
		Progress:      s.ProgressFraction(),
		Elapsed:       s.Elapsed(),
		Clock:         FormatClock(s.Elapsed()),
		Finished:      s.Finished(),
		Current:       qv,
		Overview:      overview,
		FlaggedIDs:    s.Flagged(),
		CanGoPrevious: s.CurrentIndex() > 0,
		CanGoNext:     s.CurrentIndex() < s.Len()-1,
	}
}

// SubjectRow is a per-subject line of the results screen.
type SubjectRow struct {
	Subject    exam.Subject `json:"subject"`
	Total      int          `json:"total"`
	Correct    int          `json:"correct"`
	Percentage int          `json:"percentage"`
}

// ReviewRow is a per-question line of the answer review.
type ReviewRow struct {
	Number       int             `json:"number"`
	ID           int             `json:"id"`
	Subject      exam.Subject    `json:"subject"`
	Difficulty   exam.Difficulty `json:"difficulty"`
	Statement    string          `json:"statement"`
	Options      []string        `json:"options"`
	CorrectIndex int             `json:"correctIndex"`
	Selected     *int            `json:"selected,omitempty"`
	Outcome      scoring.Outcome `json:"outcome"`
	Explanation  string          `json:"explanation"`
}

// ResultView is everything the results screen shows.
type ResultView struct {
	SessionID      string           `json:"sessionId,omitempty"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	Percentage     int              `json:"percentage"`
	Verdict        Verdict          `json:"verdict"`
	Net            scoring.NetScore `json:"net"`
	NetDisplay     string           `json:"netDisplay"`
	Penalty        float64          `json:"penaltyFactor"`
	Elapsed        int              `json:"elapsedSeconds"`
	Duration       string           `json:"duration"`
	Subjects       []SubjectRow     `json:"subjects"`
	Review         []ReviewRow      `json:"review"`
	CanRetryWrong  bool             `json:"canRetryWrong"`
}

// NewResultView builds the results screen for questions and r.
func NewResultView(questions []exam.Question, r scoring.Result) ResultView {
	pct := Percentage(r.CorrectAnswers, r.TotalQuestions)
	net := r.Net()

	subjects := make([]SubjectRow, len(r.ScoreBySubject))
	for i, ss := range r.ScoreBySubject {
		subjects[i] = SubjectRow{
			Subject:    ss.Subject,
			Total:      ss.Total,
			Correct:    ss.Correct,
			Percentage: Percentage(ss.Correct, ss.Total),
		}
	}

	review := make([]ReviewRow, len(questions))
	for i, q := range questions {
		row := ReviewRow{
			Number:       i + 1,
			ID:           q.ID,
			Subject:      q.Subject,
			Difficulty:   q.Difficulty,
			Statement:    q.Statement,
			Options:      append([]string(nil), q.Options...),
			CorrectIndex: q.CorrectIndex,
			Outcome:      scoring.OutcomeOf(q, r.Answers),
			Explanation:  q.Explanation,
		}
		if sel, ok := r.Answers[q.ID]; ok {
			row.Selected = &sel
		}
		review[i] = row
	}

	return ResultView{
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		Percentage:     pct,
		Verdict:        Feedback(pct),
		Net:            net,
		NetDisplay:     FormatNet(net.Value),
		Penalty:        scoring.PenaltyFactor,
		Elapsed:        r.TimeElapsed,
		Duration:       FormatDuration(r.TimeElapsed),
		Subjects:       subjects,
		Review:         review,
		CanRetryWrong:  r.CorrectAnswers < r.TotalQuestions,
	}
}
