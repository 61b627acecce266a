package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Hotkey, when set, triggers the item
// from anywhere in the menu (case-insensitive).
type MenuItem struct {
	Label    string
	Hotkey   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor skips disabled items and
// wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// move advances the cursor by step to the next enabled item.
func (m *Menu) move(step int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((m.Selected+step*i)%n + n) % n
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.move(-1)
		return m, nil
	case "down", "j", "tab":
		m.move(1)
		return m, nil
	case "enter":
		return m, m.trigger(m.Selected)
	}
	for i, item := range m.Items {
		if item.Hotkey != "" && strings.EqualFold(item.Hotkey, key) {
			return m, m.trigger(i)
		}
	}
	return m, nil
}

func (m Menu) trigger(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := item.Label
		if item.Hotkey != "" {
			label += "  [" + strings.ToUpper(item.Hotkey) + "]"
		}
		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("    " + label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + label))
		default:
			b.WriteString(theme.Unselected.Render("    " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Button renders a single call to action. Disabled buttons are drawn dim.
func Button(label string, enabled bool) string {
	if enabled {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
