// Package layout draws the chrome shared by every screen: a header with the
// screen title and quiz clock, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width screens drop secondary labels.
	CompactWidthThreshold = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// TooSmall is shown instead of a screen when the terminal is below
// MinWidth x MinHeight.
func TooSmall(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Align(lipgloss.Center).Render(fmt.Sprintf(
			"Terminal pequeno demais!\n\nAumente para pelo menos %d x %d\n(atual: %d x %d)",
			MinWidth, MinHeight, width, height)))
}

// Chrome is the header and footer drawn around the active screen.
type Chrome struct {
	Title string
	// Clock is the elapsed quiz time; empty hides it.
	Clock string
	Hints []KeyHint
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Header puts the app name on the left, the title centered and the clock
// on the right.
func (c Chrome) Header(width int) string {
	inner := max(width-2, 0)
	third := inner / 3

	left := lipgloss.NewStyle().Width(third).Foreground(theme.Primary).Bold(true).Render(" Simulado")
	right := ""
	if c.Clock != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱ " + c.Clock + " ")
	}
	right = lipgloss.NewStyle().Width(third).Align(lipgloss.Right).Render(right)
	center := lipgloss.NewStyle().Width(inner - 2*third).Align(lipgloss.Center).Foreground(theme.Text).Render(c.Title)

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
}

// Footer lists as many hints as fit. The last hint (usually quit) is
// always kept; hints before it are dropped from the end.
func (c Chrome) Footer(width int) string {
	const sep = "   "
	room := width - 4

	hints := c.Hints
	line := joinHints(hints, sep)
	for len(hints) > 1 && lipgloss.Width(line) > room {
		hints = append(hints[:len(hints)-2:len(hints)-2], hints[len(hints)-1])
		line = joinHints(hints, sep)
	}
	return bar.Width(width).Render(" " + line)
}

func joinHints(hints []KeyHint, sep string) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.render()
	}
	return strings.Join(parts, sep)
}

// Frame renders the chrome and fills the space between header and footer
// with body(width, bodyHeight).
func (c Chrome) Frame(width, height int, body func(width, height int) string) string {
	header := c.Header(width)
	footer := c.Footer(width)
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
