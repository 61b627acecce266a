package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/ui/theme"
)

// CountInput is a digits-only field holding an integer in [Min, Max].
type CountInput struct {
	field    textinput.Model
	Min, Max int
}

// NewCountInput starts unfocused with value set.
func NewCountInput(value, lo, hi int) CountInput {
	f := textinput.New()
	f.Prompt = ""
	f.CharLimit = len(strconv.Itoa(hi))
	f.Placeholder = strconv.Itoa(value)
	f.SetValue(strconv.Itoa(value))
	return CountInput{field: f, Min: lo, Max: hi}
}

func (c *CountInput) Focus() tea.Cmd { return c.field.Focus() }
func (c *CountInput) Blur()          { c.field.Blur() }
func (c CountInput) Focused() bool   { return c.field.Focused() }

// Update drops printable keys that are not digits before handing the
// message to the underlying field.
func (c CountInput) Update(msg tea.Msg) (CountInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.Text != "" {
		for _, r := range k.Text {
			if r < '0' || r > '9' {
				return c, nil
			}
		}
	}
	var cmd tea.Cmd
	c.field, cmd = c.field.Update(msg)
	return c, cmd
}

// Value returns the parsed number. Empty or non-numeric input yields 0.
func (c CountInput) Value() int {
	n, _ := strconv.Atoi(c.field.Value())
	return n
}

// InRange reports whether Value is within [Min, Max].
func (c CountInput) InRange() bool {
	n := c.Value()
	return n >= c.Min && n <= c.Max
}

func (c CountInput) View() string {
	v := c.field.View()
	if !c.InRange() {
		v += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return v
}
