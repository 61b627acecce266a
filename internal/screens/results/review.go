package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/report"
	"github.com/abhisek/simulado/internal/scoring"
	"github.com/abhisek/simulado/internal/screen"
	"github.com/abhisek/simulado/internal/ui/components"
	"github.com/abhisek/simulado/internal/ui/layout"
	"github.com/abhisek/simulado/internal/ui/theme"
)

// ReviewScreen walks through every question with its correct answer and
// explanation.
type ReviewScreen struct {
	rows  []report.ReviewRow
	index int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

func NewReview(rows []report.ReviewRow) *ReviewScreen {
	return &ReviewScreen{rows: rows}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Gabarito Comentado"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Navegar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h":
			if s.index > 0 {
				s.index--
			}
		case "right", "l":
			if s.index < len(s.rows)-1 {
				s.index++
			}
		}
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}
	cw := components.ContentWidth(width)
	row := s.rows[s.index]
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Questão %d de %d", row.Number, len(s.rows))))
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  ·  %s  ·  %s  ·  ", row.Subject, row.Difficulty)))
	b.WriteString(outcomeLabel(row.Outcome))
	b.WriteString("\n\n")

	chosen := -1
	if row.Selected != nil {
		chosen = *row.Selected
	}
	b.WriteString(components.NewReviewChoice(row.Statement, row.Options, chosen, row.CorrectIndex).View(cw))
	b.WriteString("\n")

	comment := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Comentário") +
		"\n" + lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Render(row.Explanation)
	b.WriteString(components.Panel(comment, cw))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func outcomeLabel(o scoring.Outcome) string {
	switch o {
	case scoring.OutcomeCorrect:
		return theme.Correct.Render("✓ Certa")
	case scoring.OutcomeWrong:
		return theme.Incorrect.Render("✗ Errada")
	}
	return theme.Hint.Render("Em branco")
}
