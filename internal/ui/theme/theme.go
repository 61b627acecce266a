// Package theme holds the palette and shared lipgloss styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/report"
)

// Palette: exam-hall navy with a gold accent.
var (
	Primary   = lipgloss.Color("#2563EB")
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#EAB308")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Warning   = lipgloss.Color("#F59E0B") // flagged questions, fair scores
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)

	// Answer review marks.
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Flagged   = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// TierColor is the color a verdict tier is drawn in.
func TierColor(t report.Tier) color.Color {
	switch t {
	case report.TierExcellent:
		return Success
	case report.TierGood:
		return Secondary
	case report.TierFair:
		return Warning
	}
	return Error
}

// ScoreColor colors a 0-100 hit rate with the tier it would earn.
func ScoreColor(percent int) color.Color {
	return TierColor(report.Feedback(percent).Tier)
}
