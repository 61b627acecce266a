package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/ui/components"
	"github.com/abhisek/simulado/internal/ui/layout"
	"github.com/abhisek/simulado/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.mode {
	case modeConfirmFinish:
		return components.Dialog("Finalizar Prova", s.finishPrompt(), width, height)
	case modeConfirmQuit:
		return components.Dialog("Abandonar Simulado",
			"As respostas desta prova serão descartadas.\n\nAbandonar? (s/n)", width, height)
	case modeOverview:
		return s.renderOverview(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) finishPrompt() string {
	answered := s.sess.AnsweredCount()
	total := s.sess.Len()
	msg := fmt.Sprintf("Você respondeu %d de %d questões.", answered, total)
	if blank := total - answered; blank > 0 {
		msg += fmt.Sprintf("\n%d em branco não pontuam nem descontam.", blank)
	}
	return msg + "\n\nFinalizar? (s/n)"
}

func (s *QuizScreen) renderQuestion(width int) string {
	cw := components.ContentWidth(width)
	cur := s.sess.Current()
	var b strings.Builder

	info := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Questão %d de %d", s.sess.CurrentIndex()+1, s.sess.Len()))
	info += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  ·  %s  ·  %s", cur.Subject, cur.Difficulty))
	if s.sess.IsFlagged(cur.ID) {
		info += "  " + theme.Flagged.Render("⚑ Marcada")
	}
	b.WriteString(info)
	b.WriteString("\n")

	label := fmt.Sprintf("Respondidas %d/%d", s.sess.AnsweredCount(), s.sess.Len())
	if layout.IsCompactWidth(width) {
		label = ""
	}
	b.WriteString(components.ProgressBar(label, s.sess.ProgressFraction(), cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(s.choice.View(cw))
	b.WriteString("\n")

	var nav []string
	if s.sess.CurrentIndex() > 0 {
		nav = append(nav, "← Anterior")
	}
	if s.sess.CurrentIndex() < s.sess.Len()-1 {
		nav = append(nav, "Próxima →")
	}
	b.WriteString(theme.Hint.Render(strings.Join(nav, "    ")))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderOverview(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Questões"))
	b.WriteString("\n\n")

	questions := s.sess.Questions()
	var rows []string
	var row []string
	for i, q := range questions {
		_, answered := s.sess.Answer(q.ID)
		cell := fmt.Sprintf("%2d", i+1)
		if s.sess.IsFlagged(q.ID) {
			cell += "⚑"
		} else {
			cell += " "
		}
		if i == s.sess.CurrentIndex() {
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}

		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case i == s.gridPos:
			style = lipgloss.NewStyle().Background(theme.Primary).Foreground(theme.Text).Bold(true)
		case s.sess.IsFlagged(q.ID):
			style = theme.Flagged
		case answered:
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		}
		row = append(row, style.Render(cell))

		if len(row) == overviewColumns {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}

	grid := strings.Join(rows, "\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, grid))
	b.WriteString("\n\n")

	legend := lipgloss.NewStyle().Foreground(theme.Secondary).Render("respondida") + "   " +
		theme.Flagged.Render("⚑ marcada") + "   " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("em branco")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, legend))
	return b.String()
}
