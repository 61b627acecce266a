package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/ui/theme"
)

// ProgressBar renders label, a track filled to fraction and the percentage,
// fitted into width cells.
func ProgressBar(label string, fraction float64, width int) string {
	return bar(label, fraction, width, theme.Secondary)
}

// ScoreBar is a ProgressBar for a 0-100 hit rate, tinted by
// theme.ScoreColor.
func ScoreBar(label string, percent, width int) string {
	return bar(label, float64(percent)/100, width, theme.ScoreColor(percent))
}

func bar(label string, fraction float64, width int, fill color.Color) string {
	fraction = min(max(fraction, 0), 1)

	var prefix string
	if label != "" {
		prefix = theme.Body.Render(label) + "  "
	}
	pct := fmt.Sprintf("  %3d%%", int(fraction*100+0.5))

	track := max(width-lipgloss.Width(prefix)-len(pct), 4)
	filled := int(float64(track)*fraction + 0.5)

	return prefix +
		lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", track-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}
