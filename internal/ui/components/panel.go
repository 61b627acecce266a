package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/ui/theme"
)

// ContentWidth returns the inner width used by every panel on a screen
// so boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 90 {
		w = 90
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a rounded-border box at the given content width.
func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}

// Dialog renders a centered confirmation box inside width x height.
func Dialog(title, body string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(title) +
				"\n\n" +
				lipgloss.NewStyle().Foreground(theme.Text).Render(body),
		)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
