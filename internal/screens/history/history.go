package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/report"
	"github.com/abhisek/simulado/internal/router"
	"github.com/abhisek/simulado/internal/screen"
	"github.com/abhisek/simulado/internal/store"
	"github.com/abhisek/simulado/internal/ui/components"
	"github.com/abhisek/simulado/internal/ui/layout"
	"github.com/abhisek/simulado/internal/ui/theme"
)

const historyLimit = 200

type loadedMsg struct {
	finished []store.SessionEvent
	err      error
}

// HistoryScreen lists finished quizzes from the session event log, newest
// first, with a detail panel for the highlighted entry.
type HistoryScreen struct {
	repo     store.EventRepo
	finished []store.SessionEvent
	cursor   int
	detail   bool
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		all, err := repo.QuerySessionEvents(context.Background(), store.QueryOpts{Limit: historyLimit})
		return loadedMsg{finished: FinishedOnly(all), err: err}
	}
}

// FinishedOnly keeps the finish events, preserving order.
func FinishedOnly(events []store.SessionEvent) []store.SessionEvent {
	var out []store.SessionEvent
	for _, e := range events {
		if e.Action == store.ActionFinish {
			out = append(out, e)
		}
	}
	return out
}

func (s *HistoryScreen) Title() string { return "Histórico" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Detalhes"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.finished, s.err = msg.finished, msg.err
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.move(-1)
		case "down", "j":
			s.move(1)
		case "enter", "space":
			s.detail = !s.detail
		}
	}
	return s, nil
}

func (s *HistoryScreen) move(delta int) {
	next := s.cursor + delta
	if next >= 0 && next < len(s.finished) {
		s.cursor = next
	}
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.err != nil:
		return centered.Foreground(theme.Error).Render("\n\nErro: " + s.err.Error())
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\nCarregando histórico...")
	case len(s.finished) == 0:
		return centered.Inherit(theme.Hint).Render("\n\nNenhum simulado finalizado ainda.")
	}

	cw := components.ContentWidth(width)
	lines := []string{
		theme.Hint.Render(fmt.Sprintf("  %-16s  %-8s  %-5s  %4s  %6s", "Data", "Tempo", "Acert", "%", "Nota")),
	}
	for i, e := range s.finished {
		lines = append(lines, s.row(i, e))
	}
	lines = append(lines, "", theme.Subtitle.Render(s.summary()))

	out := components.Panel(strings.Join(lines, "\n"), cw)
	if s.detail {
		out += "\n" + components.Panel(details(s.finished[s.cursor]), cw)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, out)
}

func (s *HistoryScreen) row(i int, e store.SessionEvent) string {
	pct := report.Percentage(e.CorrectAnswers, e.Questions)
	marker := "  "
	style := lipgloss.NewStyle().Foreground(theme.ScoreColor(pct))
	if i == s.cursor {
		marker = "▸ "
		style = style.Bold(true)
	}
	line := fmt.Sprintf("%s%-16s  %-8s  %2d/%-2d  %3d%%  %6s",
		marker, e.Timestamp.Format("02/01/2006 15:04"), report.FormatClock(e.DurationSecs),
		e.CorrectAnswers, e.Questions, pct, report.FormatNet(e.NetScore))
	if e.ParentID != "" {
		line += "  (refazer)"
	}
	return style.Render(line)
}

// summary averages the percentage over every listed attempt.
func (s *HistoryScreen) summary() string {
	total := 0
	for _, e := range s.finished {
		total += report.Percentage(e.CorrectAnswers, e.Questions)
	}
	return fmt.Sprintf("%d simulados · média %d%%", len(s.finished), total/len(s.finished))
}

func details(e store.SessionEvent) string {
	lines := []string{
		"Disciplinas: " + strings.Join(e.Subjects, ", "),
		fmt.Sprintf("Respondidas: %d de %d", e.Answered, e.Questions),
		"Sessão: " + e.SessionID,
	}
	if e.ParentID != "" {
		lines = append(lines, "Refazendo: "+e.ParentID)
	}
	return theme.Body.Render(strings.Join(lines, "\n"))
}
