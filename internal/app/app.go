package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/router"
	"github.com/abhisek/simulado/internal/screen"
	"github.com/abhisek/simulado/internal/screens/setup"
	"github.com/abhisek/simulado/internal/store"
	"github.com/abhisek/simulado/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Provider  questionbank.Provider
	Recorder  *events.Recorder
	EventRepo store.EventRepo // optional; enables the history screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the setup screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(setup.New(opts.Provider, opts.Recorder, opts.EventRepo)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.TooSmall(m.width, m.height)
	}

	active := m.router.Active()
	chrome := layout.Chrome{Hints: m.footerHints(active)}
	if active != nil {
		chrome.Title = active.Title()
		if cp, ok := active.(screen.ClockProvider); ok {
			chrome.Clock = cp.Clock()
		}
	}
	return chrome.Frame(m.width, m.height, m.router.View)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Voltar"},
			{Key: "Ctrl+C", Description: "Sair"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Selecionar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
