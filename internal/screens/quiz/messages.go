package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// tickMsg advances the clock of one session. Ticks for other sessions,
// or for a finished one, are dropped and not re-armed.
type tickMsg struct {
	SessionID string
}

func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{SessionID: sessionID}
	})
}
