package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simulado/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns a stack of them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View draws the area between header and footer.
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider overrides the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	CapturesEscape() bool
}

// Resumer is implemented by screens that refresh when the screens above
// them are popped.
type Resumer interface {
	Resume() tea.Cmd
}

// ClockProvider is implemented by screens that show a running clock in
// the header.
type ClockProvider interface {
	Clock() string
}
