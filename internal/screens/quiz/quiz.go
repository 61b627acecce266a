package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/report"
	"github.com/abhisek/simulado/internal/router"
	"github.com/abhisek/simulado/internal/screen"
	"github.com/abhisek/simulado/internal/screens/results"
	"github.com/abhisek/simulado/internal/session"
	"github.com/abhisek/simulado/internal/ui/components"
	"github.com/abhisek/simulado/internal/ui/layout"
)

type mode int

const (
	modeAnswer mode = iota
	modeOverview
	modeConfirmFinish
	modeConfirmQuit
)

// overviewColumns is the width of the question grid.
const overviewColumns = 10

// QuizScreen runs one session: answering, flagging, navigation and the
// clock.
type QuizScreen struct {
	sess     *session.Session
	recorder *events.Recorder
	choice   components.MultiChoice
	mode     mode
	gridPos  int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)
var _ screen.ClockProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over a fresh session.
func New(sess *session.Session, recorder *events.Recorder) *QuizScreen {
	s := &QuizScreen{sess: sess, recorder: recorder}
	s.syncChoice()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return tickCmd(s.sess.ID())
}

func (s *QuizScreen) Title() string {
	return "Simulado"
}

func (s *QuizScreen) Clock() string {
	return report.FormatClock(s.sess.Elapsed())
}

func (s *QuizScreen) CapturesEscape() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeConfirmFinish, modeConfirmQuit:
		return []layout.KeyHint{
			{Key: "S", Description: "Sim"},
			{Key: "N", Description: "Não"},
		}
	case modeOverview:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Mover"},
			{Key: "Enter", Description: "Ir para questão"},
			{Key: "G/Esc", Description: "Fechar"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-E", Description: "Responder"},
		{Key: "←→", Description: "Navegar"},
		{Key: "F", Description: "Marcar"},
		{Key: "G", Description: "Questões"},
		{Key: "Shift+F", Description: "Finalizar"},
		{Key: "Esc", Description: "Abandonar"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.SessionID != s.sess.ID() || s.sess.Finished() {
			return s, nil
		}
		s.sess.Tick()
		return s, tickCmd(s.sess.ID())

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeConfirmFinish:
		switch key {
		case "s", "S", "y", "Y", "enter":
			return s.finish()
		case "n", "N", "esc":
			s.mode = modeAnswer
		}
		return s, nil

	case modeConfirmQuit:
		switch key {
		case "s", "S", "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.mode = modeAnswer
		}
		return s, nil

	case modeOverview:
		return s.handleOverviewKey(key)
	}

	switch key {
	case "esc":
		s.mode = modeConfirmQuit
		return s, nil
	case "F", "ctrl+f":
		s.mode = modeConfirmFinish
		return s, nil
	case "left":
		s.sess.Navigate(session.Prev)
		s.syncChoice()
		return s, nil
	case "right":
		s.sess.Navigate(session.Next)
		s.syncChoice()
		return s, nil
	case "f":
		_ = s.sess.ToggleFlag(s.sess.Current().ID)
		return s, nil
	case "g":
		s.mode = modeOverview
		s.gridPos = s.sess.CurrentIndex()
		return s, nil
	}

	var picked bool
	s.choice, picked = s.choice.Update(msg)
	if picked {
		_ = s.sess.Select(s.sess.Current().ID, s.choice.Chosen)
	}
	return s, nil
}

func (s *QuizScreen) handleOverviewKey(key string) (screen.Screen, tea.Cmd) {
	n := s.sess.Len()
	switch key {
	case "esc", "g":
		s.mode = modeAnswer
	case "left":
		if s.gridPos > 0 {
			s.gridPos--
		}
	case "right":
		if s.gridPos < n-1 {
			s.gridPos++
		}
	case "up":
		if s.gridPos-overviewColumns >= 0 {
			s.gridPos -= overviewColumns
		}
	case "down":
		if s.gridPos+overviewColumns < n {
			s.gridPos += overviewColumns
		}
	case "enter":
		if err := s.sess.JumpTo(s.gridPos); err == nil {
			s.syncChoice()
			s.mode = modeAnswer
		}
	}
	return s, nil
}

// finish freezes the session, records it and shows the results.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	res := s.sess.Finish()
	finished := events.Finished(s.sess.ID(), s.sess.Questions(), res)
	rec := s.recorder
	next := results.New(s.sess, rec, func(retry *session.Session) screen.Screen {
		return New(retry, rec)
	})

	return s, tea.Batch(
		func() tea.Msg {
			rec.Record(context.Background(), finished)
			return nil
		},
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		},
	)
}

// syncChoice rebuilds the option list for the current question.
func (s *QuizScreen) syncChoice() {
	cur := s.sess.Current()
	chosen := -1
	if sel, ok := s.sess.Answer(cur.ID); ok {
		chosen = sel
	}
	s.choice = components.NewMultiChoice(cur.Statement, cur.Options, chosen)
}
