package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/ui/theme"
)

// MultiChoice renders a question's A–E options. In answer mode the cursor
// moves freely and Chosen is the recorded answer; in review mode the
// correct option and the chosen one are colored.
type MultiChoice struct {
	Statement    string
	Options      []string
	Cursor       int
	Chosen       int // -1 when blank
	CorrectIndex int
	Review       bool
}

// NewMultiChoice creates an answer-mode component.
func NewMultiChoice(statement string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 {
		cursor = chosen
	}
	return MultiChoice{
		Statement:    statement,
		Options:      options,
		Cursor:       cursor,
		Chosen:       chosen,
		CorrectIndex: -1,
	}
}

// NewReviewChoice creates a review-mode component.
func NewReviewChoice(statement string, options []string, chosen, correctIndex int) MultiChoice {
	m := NewMultiChoice(statement, options, chosen)
	m.CorrectIndex = correctIndex
	m.Review = true
	return m
}

// Update moves the cursor and picks options. The bool result reports
// whether an option was picked.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Review {
		return m, false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, false
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, false
	case "enter", "space":
		m.Chosen = m.Cursor
		return m, true
	}

	if i, ok := OptionKey(key); ok && i < len(m.Options) {
		m.Cursor = i
		m.Chosen = i
		return m, true
	}
	return m, false
}

// OptionKey maps "a".."e" and "1".."5" to an option index.
func OptionKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c < 'a'+exam.OptionCount:
		return int(c - 'a'), true
	case c >= 'A' && c < 'A'+exam.OptionCount:
		return int(c - 'A'), true
	case c >= '1' && c < '1'+exam.OptionCount:
		return int(c - '1'), true
	}
	return 0, false
}

// View renders the statement and the options wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Bold(true).
		Render(m.Statement))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Review {
			prefix = "▸ "
		}
		marker := " "
		if i == m.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, exam.OptionLabel(i), opt)

		style := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
		switch {
		case m.Review && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Review && i == m.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
		case m.Review:
			style = style.Foreground(theme.TextDim)
		case i == m.Chosen:
			style = style.Foreground(theme.Accent).Bold(true)
		case i == m.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect reports whether the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen >= 0 && m.Chosen == m.CorrectIndex
}
