// Package router keeps the stack of TUI screens: setup at the bottom, the
// quiz or history above it, review on top of results.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simulado/internal/screen"
)

type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	// PopToRootMsg unwinds to the first screen, e.g. "new quiz" from results.
	PopToRootMsg struct{}
)

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push puts s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop drops the top screen. The root is never popped.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(len(r.stack) - 1)
}

// PopToRoot drops every screen above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

// truncate shrinks the stack to n screens (at least one) and resumes the
// screen that becomes active.
func (r *Router) truncate(n int) tea.Cmd {
	if n < 1 || n >= len(r.stack) {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	if rs, ok := r.Active().(screen.Resumer); ok {
		return rs.Resume()
	}
	return nil
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	top := len(r.stack) - 1
	if top < 0 {
		return nil
	}
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
