package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Driver() != DriverSQLite {
		t.Errorf("Driver() = %q, want %q", s.Driver(), DriverSQLite)
	}
}

func TestParseDriver(t *testing.T) {
	tests := []struct {
		in      string
		want    Driver
		wantErr bool
	}{
		{"", DriverSQLite, false},
		{"sqlite", DriverSQLite, false},
		{"SQLite3", DriverSQLite, false},
		{"postgres", DriverPostgres, false},
		{"pgx", DriverPostgres, false},
		{" postgresql ", DriverPostgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDriver(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDriver(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDriver(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceCounterSeedIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.seq.Next(ctx)
	require.NoError(t, err)

	// Re-creating the counter must not reset the stored value.
	sc, err := newSequenceCounter(ctx, s.DB(), DriverSQLite)
	require.NoError(t, err)
	next, err := sc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, first+1, next)
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"llm_request_events", "session_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Purpose:      "question-bank",
		InputTokens:  1200,
		OutputTokens: 3400,
		LatencyMs:    2500,
		Success:      true,
		RequestBody:  `{"prompt":"x"}`,
		ResponseBody: `{"questions":[]}`,
	})
	require.NoError(t, err)

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, int64(1), e.Sequence)
	assert.Equal(t, "gemini", e.Provider)
	assert.Equal(t, "gemini-2.5-flash", e.Model)
	assert.Equal(t, "question-bank", e.Purpose)
	assert.Equal(t, 1200, e.InputTokens)
	assert.Equal(t, 3400, e.OutputTokens)
	assert.Equal(t, int64(2500), e.LatencyMs)
	assert.True(t, e.Success)
	assert.Equal(t, `{"questions":[]}`, e.ResponseBody)
	assert.True(t, e.Timestamp.After(before))

	got, err := repo.GetLLMEvent(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"prompt":"x"}`, got.RequestBody)

	missing, err := repo.GetLLMEvent(ctx, e.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQueryLLMEventsOrderingAndLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock",
			Model:    "mock-model",
			Purpose:  "question-bank",
			Success:  true,
		}))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(4), events[0].Sequence)
	assert.Equal(t, int64(3), events[1].Sequence)

	events, err = repo.QueryLLMEvents(ctx, QueryOpts{After: 1, Before: 4})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[0].Sequence)
	assert.Equal(t, int64(2), events[1].Sequence)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-bank", InputTokens: 100, OutputTokens: 200, LatencyMs: 1000, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-bank", InputTokens: 50, OutputTokens: 100, LatencyMs: 3000, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "question-bank", LatencyMs: 500, Success: false, ErrorMessage: "boom"},
	}
	for _, r := range rows {
		require.NoError(t, repo.AppendLLMRequest(ctx, r))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, "question-bank", byPurpose[0].Purpose)
	assert.Equal(t, 3, byPurpose[0].Calls)
	assert.Equal(t, 150, byPurpose[0].InputTokens)
	assert.Equal(t, 300, byPurpose[0].OutputTokens)
	assert.Equal(t, int64(1500), byPurpose[0].AvgLatencyMs)

	// Failed calls are excluded from per-model usage.
	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, "gemini-2.5-flash", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
	assert.Equal(t, 150, byModel[0].InputTokens)
	assert.Equal(t, 300, byModel[0].OutputTokens)
}

func TestSessionEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s-1",
		Action:    ActionStart,
		Subjects:  []string{"Licitações e Contratos", "Administração Pública"},
		Questions: 10,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:      "s-1",
		Action:         ActionFinish,
		Subjects:       []string{"Licitações e Contratos", "Administração Pública"},
		Questions:      10,
		Answered:       8,
		CorrectAnswers: 6,
		NetScore:       5.5,
		DurationSecs:   754,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s-2",
		ParentID:  "s-1",
		Action:    ActionRetry,
		Questions: 4,
	}))

	events, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	retry := events[0]
	assert.Equal(t, ActionRetry, retry.Action)
	assert.Equal(t, "s-1", retry.ParentID)
	assert.Empty(t, retry.Subjects)

	finish := events[1]
	assert.Equal(t, ActionFinish, finish.Action)
	assert.Equal(t, []string{"Licitações e Contratos", "Administração Pública"}, finish.Subjects)
	assert.Equal(t, 8, finish.Answered)
	assert.Equal(t, 6, finish.CorrectAnswers)
	assert.InDelta(t, 5.5, finish.NetScore, 1e-9)
	assert.Equal(t, 754, finish.DurationSecs)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: ActionStart}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "p", Success: true}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: ActionFinish}))

	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), sessions[0].Sequence)
	assert.Equal(t, int64(2), llm[0].Sequence)
	assert.Equal(t, int64(1), sessions[1].Sequence)
}
