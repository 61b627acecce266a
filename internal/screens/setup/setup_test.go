package setup

import (
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/router"
	"github.com/abhisek/simulado/internal/screens/history"
	"github.com/abhisek/simulado/internal/screens/quiz"
	"github.com/abhisek/simulado/internal/store"
)

type fakeRepo struct {
	store.EventRepo
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func testBank() []exam.Question {
	var qs []exam.Question
	for _, sub := range exam.AllSubjects() {
		for i := 0; i < 20; i++ {
			qs = append(qs, exam.Question{
				ID:           len(qs) + 1,
				Subject:      sub,
				Difficulty:   exam.DifficultyMedium,
				Statement:    fmt.Sprintf("Enunciado %d.", len(qs)+1),
				Options:      []string{"A", "B", "C", "D", "E"},
				CorrectIndex: 0,
				Explanation:  "Comentário.",
			})
		}
	}
	return qs
}

func testSetupScreen() (*SetupScreen, *events.MockPublisher) {
	pub := events.NewMockPublisher()
	s := New(questionbank.NewStaticProvider(testBank()), events.NewRecorder(nil, pub), fakeRepo{})
	return s, pub
}

func TestSetupScreen_Defaults(t *testing.T) {
	s, _ := testSetupScreen()
	cfg := s.Config()
	if len(cfg.Subjects) != 0 {
		t.Errorf("Subjects = %v, want none", cfg.Subjects)
	}
	if cfg.QuestionCount != exam.DefaultQuestionCount {
		t.Errorf("QuestionCount = %d, want %d", cfg.QuestionCount, exam.DefaultQuestionCount)
	}
	if s.ready() {
		t.Error("start button should be disabled without subjects")
	}
}

func TestSetupScreen_ToggleSubjects(t *testing.T) {
	s, _ := testSetupScreen()
	s.Update(keyPress('1'))
	s.Update(keyPress('3'))
	cfg := s.Config()
	if len(cfg.Subjects) != 2 || cfg.Subjects[0] != exam.SubjectLicitacoes || cfg.Subjects[1] != exam.SubjectAdministracaoPublica {
		t.Errorf("Subjects = %v", cfg.Subjects)
	}
	if !s.ready() {
		t.Error("start button should be enabled")
	}

	s.Update(keyPress('1'))
	if len(s.Config().Subjects) != 1 {
		t.Errorf("Subjects = %v, want one", s.Config().Subjects)
	}
}

func TestSetupScreen_EnterWithoutSubjects(t *testing.T) {
	s, _ := testSetupScreen()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command")
	}
	if s.errMsg != "Selecione pelo menos uma disciplina." {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if s.loading {
		t.Error("should not be loading")
	}
}

func TestSetupScreen_EditCount(t *testing.T) {
	s, _ := testSetupScreen()
	s.Update(specialKey(tea.KeyTab))
	if s.focus != focusCount {
		t.Fatal("expected focus on count")
	}
	s.Update(specialKey(tea.KeyBackspace))
	s.Update(specialKey(tea.KeyBackspace))
	s.Update(keyPress('x')) // ignored, numeric only
	s.Update(keyPress('5'))
	if got := s.Config().QuestionCount; got != 5 {
		t.Errorf("QuestionCount = %d, want 5", got)
	}

	s.Update(keyPress('9'))
	if got := s.Config().QuestionCount; got != 59 {
		t.Errorf("QuestionCount = %d, want 59", got)
	}
	s.Update(keyPress('9')) // over the field's width
	if got := s.Config().QuestionCount; got != 59 {
		t.Errorf("QuestionCount = %d after a third digit, want 59", got)
	}

	// Digits go to the count input, not the subject toggles.
	if len(s.Config().Subjects) != 0 {
		t.Errorf("Subjects = %v, want none", s.Config().Subjects)
	}
}

func TestSetupScreen_StartQuiz(t *testing.T) {
	s, pub := testSetupScreen()
	s.Update(keyPress('2'))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.loading {
		t.Fatal("expected loading state")
	}
	if cmd == nil {
		t.Fatal("expected generation command")
	}

	// Keys are ignored while generating.
	s.Update(keyPress('1'))
	if len(s.Config().Subjects) != 1 {
		t.Error("subjects changed while loading")
	}

	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("msgs = %v", msgs)
	}
	ready, ok := msgs[0].(bankReadyMsg)
	if !ok {
		t.Fatalf("msg = %T, want bankReadyMsg", msgs[0])
	}
	if ready.Err != nil || len(ready.Questions) != exam.DefaultQuestionCount {
		t.Fatalf("ready = %d questions, err %v", len(ready.Questions), ready.Err)
	}

	_, cmd = s.Update(ready)
	if s.loading {
		t.Error("expected loading cleared")
	}
	var pushed bool
	for _, msg := range collect(cmd) {
		if m, ok := msg.(router.PushScreenMsg); ok {
			_, pushed = m.Screen.(*quiz.QuizScreen)
		}
	}
	if !pushed {
		t.Error("expected quiz screen pushed")
	}
	if got := pub.Published(); len(got) != 1 || got[0].Type != events.QuizStarted {
		t.Errorf("published = %+v, want one quiz.started", got)
	}
}

func TestSetupScreen_ProviderFailure(t *testing.T) {
	s, pub := testSetupScreen()
	s.loading = true

	s.Update(bankReadyMsg{Err: &questionbank.ProviderFailure{Reason: "transport", Err: errors.New("timeout")}})
	if s.loading {
		t.Error("expected loading cleared")
	}
	if s.errMsg != questionbank.FailureMessage {
		t.Errorf("errMsg = %q, want %q", s.errMsg, questionbank.FailureMessage)
	}
	if len(pub.Published()) != 0 {
		t.Error("no event expected on failure")
	}

	s.Update(bankReadyMsg{Err: questionbank.ErrGenerationInFlight})
	if s.errMsg == questionbank.FailureMessage {
		t.Error("expected a distinct message for an in-flight generation")
	}
}

func TestSetupScreen_History(t *testing.T) {
	s, _ := testSetupScreen()
	_, cmd := s.Update(keyPress('h'))
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("msgs = %v", msgs)
	}
	push, ok := msgs[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want router.PushScreenMsg", msgs[0])
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}

	noRepo := New(questionbank.NewStaticProvider(testBank()), nil, nil)
	if _, cmd := noRepo.Update(keyPress('h')); cmd != nil {
		t.Error("history should be unavailable without an event repo")
	}
}
