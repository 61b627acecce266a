package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/router"
	"github.com/abhisek/simulado/internal/screens/quiz"
	"github.com/abhisek/simulado/internal/session"
)

func testQuestions(n int) []exam.Question {
	qs := make([]exam.Question, n)
	for i := range qs {
		qs[i] = exam.Question{
			ID:           i + 1,
			Subject:      exam.SubjectLicitacoes,
			Difficulty:   exam.DifficultyMedium,
			Statement:    fmt.Sprintf("Enunciado %d.", i+1),
			Options:      []string{"A", "B", "C", "D", "E"},
			CorrectIndex: 0,
			Explanation:  "Comentário.",
		}
	}
	return qs
}

func testApp(t *testing.T) AppModel {
	t.Helper()
	m := newAppModel(Options{Provider: questionbank.NewStaticProvider(testQuestions(10))})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(AppModel)
}

func TestAppModel_StartsOnSetup(t *testing.T) {
	m := testApp(t)
	if got := m.router.Active().Title(); got != "Configurar Simulado" {
		t.Errorf("active = %q, want setup", got)
	}
	if m.router.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := testApp(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command for Esc at root")
	}
}

func TestAppModel_QuizCapturesEsc(t *testing.T) {
	m := testApp(t)
	sess, err := session.New(testQuestions(3))
	if err != nil {
		t.Fatal(err)
	}
	m.router.Push(quiz.New(sess, nil))

	updated, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = updated.(AppModel)
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("Esc on the quiz must not pop it")
		}
	}
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}
	if !strings.Contains(m.router.View(120, 30), "Abandonar") {
		t.Error("expected abandon confirmation")
	}
}

func TestAppModel_HeaderShowsClock(t *testing.T) {
	m := testApp(t)
	sess, err := session.New(testQuestions(3))
	if err != nil {
		t.Fatal(err)
	}
	sess.Tick()
	m.router.Push(quiz.New(sess, nil))

	if !strings.Contains(m.render(), "00:00:01") {
		t.Error("expected clock in header")
	}
}
