package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simulado/internal/store"
)

type fakeRepo struct {
	store.EventRepo
	events []store.SessionEvent
}

func (f *fakeRepo) QuerySessionEvents(_ context.Context, _ store.QueryOpts) ([]store.SessionEvent, error) {
	return f.events, nil
}

type errRepo struct{ store.EventRepo }

func (errRepo) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, errors.New("boom")
}

func sessionEvent(id, parent, action string, correct, total int) store.SessionEvent {
	return store.SessionEvent{
		Timestamp: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		SessionEventData: store.SessionEventData{
			SessionID:      id,
			ParentID:       parent,
			Action:         action,
			Subjects:       []string{"Licitações e Contratos"},
			Questions:      total,
			Answered:       total,
			CorrectAnswers: correct,
			NetScore:       float64(correct) - float64(total-correct)*0.25,
			DurationSecs:   600,
		},
	}
}

func TestFinishedOnly(t *testing.T) {
	in := []store.SessionEvent{
		sessionEvent("b", "a", store.ActionRetry, 0, 2),
		sessionEvent("a", "", store.ActionFinish, 8, 10),
		sessionEvent("a", "", store.ActionStart, 0, 10),
	}
	got := FinishedOnly(in)
	if len(got) != 1 || got[0].SessionID != "a" {
		t.Errorf("FinishedOnly = %+v, want only the finish of a", got)
	}
}

func TestHistoryScreen_LoadAndExpand(t *testing.T) {
	repo := &fakeRepo{events: []store.SessionEvent{
		sessionEvent("b", "a", store.ActionFinish, 2, 2),
		sessionEvent("a", "", store.ActionFinish, 8, 10),
	}}
	s := New(repo)
	if !strings.Contains(s.View(100, 30), "Carregando") {
		t.Error("expected loading view")
	}

	s.Update(s.Init()())
	view := s.View(100, 30)
	if !strings.Contains(view, "(refazer)") || !strings.Contains(view, "80%") {
		t.Errorf("view missing rows:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.detail || s.cursor != 1 {
		t.Fatalf("detail = %v cursor = %d, want detail on row 1", s.detail, s.cursor)
	}
	view = s.View(100, 30)
	if !strings.Contains(view, "Sessão: a") {
		t.Errorf("expected session details:\n%s", view)
	}
	if !strings.Contains(view, "2 simulados · média 90%") {
		t.Errorf("expected average summary:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.cursor != 1 {
		t.Errorf("cursor = %d, want clamp at 1", s.cursor)
	}
}

func TestHistoryScreen_LoadError(t *testing.T) {
	s := New(&errRepo{})
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "Erro: boom") {
		t.Error("expected error view")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "Nenhum simulado") {
		t.Error("expected empty message")
	}
}
