package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/router"
	"github.com/abhisek/simulado/internal/screen"
	"github.com/abhisek/simulado/internal/screens/history"
	"github.com/abhisek/simulado/internal/screens/quiz"
	"github.com/abhisek/simulado/internal/session"
	"github.com/abhisek/simulado/internal/store"
	"github.com/abhisek/simulado/internal/ui/components"
	"github.com/abhisek/simulado/internal/ui/layout"
	"github.com/abhisek/simulado/internal/ui/theme"
)

// bankReadyMsg carries the result of a generation request.
type bankReadyMsg struct {
	Config    exam.QuizConfig
	Questions []exam.Question
	Err       error
}

type focus int

const (
	focusSubjects focus = iota
	focusCount
)

// SetupScreen lets the user pick subjects and a question count, then
// generates the quiz.
type SetupScreen struct {
	provider  questionbank.Provider
	recorder  *events.Recorder
	eventRepo store.EventRepo

	subjects []exam.Subject
	selected map[exam.Subject]bool
	cursor   int
	focus    focus
	count    components.CountInput

	loading bool
	errMsg  string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.Resumer = (*SetupScreen)(nil)

// New creates a SetupScreen. eventRepo may be nil, which hides history.
func New(provider questionbank.Provider, recorder *events.Recorder, eventRepo store.EventRepo) *SetupScreen {
	return &SetupScreen{
		provider:  provider,
		recorder:  recorder,
		eventRepo: eventRepo,
		subjects:  exam.AllSubjects(),
		selected:  make(map[exam.Subject]bool),
		count:     components.NewCountInput(exam.DefaultQuestionCount, 1, exam.MaxQuestionCount),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

// Resume runs when a quiz or the history is closed. Selections are kept
// so the next quiz starts from the same configuration.
func (s *SetupScreen) Resume() tea.Cmd {
	s.loading = false
	s.errMsg = ""
	s.focus = focusSubjects
	s.count.Blur()
	return nil
}

func (s *SetupScreen) Title() string {
	return "Configurar Simulado"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Sair"}}
	}
	hints := []layout.KeyHint{
		{Key: "1-3", Description: "Disciplina"},
		{Key: "Tab", Description: "Quantidade"},
		{Key: "Enter", Description: "Iniciar"},
	}
	if s.eventRepo != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "Histórico"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Sair"})
}

// Config returns the quiz configuration currently on screen.
func (s *SetupScreen) Config() exam.QuizConfig {
	cfg := exam.QuizConfig{}
	for _, sub := range s.subjects {
		if s.selected[sub] {
			cfg.Subjects = append(cfg.Subjects, sub)
		}
	}
	cfg.QuestionCount = s.count.Value()
	return cfg
}

func (s *SetupScreen) ready() bool {
	return s.Config().Validate() == nil
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankReadyMsg:
		return s.handleBankReady(msg)

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		return s.handleKey(msg)
	}

	if s.focus == focusCount {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		if !s.ready() {
			s.errMsg = configMessage(s.Config())
			return s, nil
		}
		return s, s.generate()
	case "tab", "shift+tab":
		return s.toggleFocus()
	}

	if s.focus == focusCount {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		s.errMsg = ""
		return s, cmd
	}

	switch key {
	case "1", "2", "3":
		i := int(key[0] - '1')
		if i < len(s.subjects) {
			s.cursor = i
			s.toggle(s.subjects[i])
		}
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.subjects)-1 {
			s.cursor++
		}
	case "space", "x":
		s.toggle(s.subjects[s.cursor])
	case "h", "H":
		if s.eventRepo != nil {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(s.eventRepo)}
			}
		}
	}
	return s, nil
}

func (s *SetupScreen) toggle(sub exam.Subject) {
	s.selected[sub] = !s.selected[sub]
	s.errMsg = ""
}

func (s *SetupScreen) toggleFocus() (screen.Screen, tea.Cmd) {
	if s.focus == focusSubjects {
		s.focus = focusCount
		return s, s.count.Focus()
	}
	s.focus = focusSubjects
	s.count.Blur()
	return s, nil
}

// generate starts the provider call for the configuration on screen.
func (s *SetupScreen) generate() tea.Cmd {
	cfg := s.Config()
	s.loading = true
	s.errMsg = ""
	provider := s.provider
	return func() tea.Msg {
		qs, err := provider.Generate(context.Background(), cfg)
		return bankReadyMsg{Config: cfg, Questions: qs, Err: err}
	}
}

func (s *SetupScreen) handleBankReady(msg bankReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = failureMessage(msg.Err)
		return s, nil
	}

	sess, err := session.New(msg.Questions)
	if err != nil {
		s.errMsg = questionbank.FailureMessage
		return s, nil
	}

	rec := s.recorder
	started := events.Started(sess.ID(), sess.Questions())
	return s, tea.Batch(
		func() tea.Msg {
			rec.Record(context.Background(), started)
			return nil
		},
		func() tea.Msg {
			return router.PushScreenMsg{Screen: quiz.New(sess, rec)}
		},
	)
}

func configMessage(cfg exam.QuizConfig) string {
	if len(cfg.Subjects) == 0 {
		return "Selecione pelo menos uma disciplina."
	}
	return fmt.Sprintf("Escolha entre 1 e %d questões.", exam.MaxQuestionCount)
}

func failureMessage(err error) string {
	if errors.Is(err, questionbank.ErrGenerationInFlight) {
		return "Já existe uma prova sendo preparada. Aguarde."
	}
	return questionbank.FailureMessage
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("SIMULADO BANCA CEBRASPE"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Analista Fazendário"))
	b.WriteString("\n\n")

	var subj strings.Builder
	subj.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Disciplinas"))
	subj.WriteString("\n\n")
	for i, sub := range s.subjects {
		box := "[ ]"
		if s.selected[sub] {
			box = "[x]"
		}
		prefix := "  "
		style := theme.Unselected
		if s.focus == focusSubjects && i == s.cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		if s.selected[sub] {
			style = style.Foreground(theme.Accent)
		}
		subj.WriteString(style.Render(fmt.Sprintf("%s%d %s %s", prefix, i+1, box, sub)))
		subj.WriteString("\n")
	}
	if len(s.Config().Subjects) == 0 {
		subj.WriteString("\n")
		subj.WriteString(theme.Hint.Render("Selecione pelo menos uma disciplina."))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(subj.String(), cw)))
	b.WriteString("\n")

	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Quantidade de questões: ")
	if s.focus == focusCount {
		label = theme.Selected.Render("▸ Quantidade de questões: ")
	}
	countLine := label + s.count.View() +
		theme.Hint.Render(fmt.Sprintf("  (máx. %d)", exam.MaxQuestionCount))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(countLine, cw)))
	b.WriteString("\n\n")

	if s.loading {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("Preparando Prova..."))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Button("INICIAR SIMULADO", s.ready())))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}
