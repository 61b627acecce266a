package results

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/report"
	"github.com/abhisek/simulado/internal/router"
	"github.com/abhisek/simulado/internal/scoring"
	"github.com/abhisek/simulado/internal/screen"
	"github.com/abhisek/simulado/internal/session"
	"github.com/abhisek/simulado/internal/ui/components"
	"github.com/abhisek/simulado/internal/ui/layout"
	"github.com/abhisek/simulado/internal/ui/theme"
)

// StartFunc builds the screen that runs a retry session.
type StartFunc func(*session.Session) screen.Screen

// ResultsScreen shows the outcome of a finished session.
type ResultsScreen struct {
	sess     *session.Session
	view     report.ResultView
	recorder *events.Recorder
	start    StartFunc
	menu     components.Menu
	errMsg   string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. sess must be finished.
func New(sess *session.Session, recorder *events.Recorder, start StartFunc) *ResultsScreen {
	res, _ := sess.Result()
	s := &ResultsScreen{
		sess:     sess,
		view:     report.NewResultView(sess.Questions(), res),
		recorder: recorder,
		start:    start,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Revisar respostas", Hotkey: "v", Action: s.review},
		{Label: "Refazer erradas", Hotkey: "r", Action: s.retry, Disabled: !s.view.CanRetryWrong},
		{Label: "Novo simulado", Hotkey: "n", Action: newQuiz},
	})
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Resultado"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Selecionar"},
		{Key: "V", Description: "Revisar"},
	}
	if s.view.CanRetryWrong {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Refazer erradas"})
	}
	return append(hints, layout.KeyHint{Key: "N", Description: "Novo simulado"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && strings.EqualFold(k.String(), "r") && !s.view.CanRetryWrong {
		s.errMsg = nothingToRetry
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) review() tea.Cmd {
	rows := s.view.Review
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: NewReview(rows)}
	}
}

// retry starts a session over the questions that were missed or left blank.
func (s *ResultsScreen) retry() tea.Cmd {
	next, err := session.Retry(s.sess)
	if err != nil {
		if errors.Is(err, scoring.ErrNothingToRetry) {
			s.errMsg = nothingToRetry
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}

	rec := s.recorder
	retried := events.Retried(next.ID(), s.sess.ID(), next.Questions())
	nextScreen := s.start(next)
	return tea.Batch(
		func() tea.Msg {
			rec.Record(context.Background(), retried)
			return nil
		},
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: nextScreen}
		},
	)
}

const nothingToRetry = "Nenhuma questão errada ou em branco para refazer."

func newQuiz() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *ResultsScreen) View(width, height int) string {
	v := s.view
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TierColor(v.Verdict.Tier)).
		Bold(true).
		Render(fmt.Sprintf("%s  %d%%", v.Verdict.Title, v.Percentage)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(v.Verdict.Message))
	b.WriteString("\n\n")

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("Acertos: %d de %d", v.CorrectAnswers, v.TotalQuestions))
	summary.WriteString("\n")
	summary.WriteString(fmt.Sprintf("Nota líquida: %s  (%d certas − %d erradas × %.2f, %d em branco)",
		v.NetDisplay, v.Net.Correct, v.Net.Wrong, v.Penalty, v.Net.Blank))
	summary.WriteString("\n")
	summary.WriteString("Tempo: " + v.Duration)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Panel(theme.Body.Render(summary.String()), cw)))
	b.WriteString("\n")

	var subjects strings.Builder
	subjects.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Desempenho por disciplina"))
	subjects.WriteString("\n")
	for _, row := range v.Subjects {
		label := fmt.Sprintf("%-24s %2d/%-2d", row.Subject, row.Correct, row.Total)
		subjects.WriteString("\n")
		subjects.WriteString(components.ScoreBar(label, row.Percentage, cw-6))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(subjects.String(), cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}
	return b.String()
}
