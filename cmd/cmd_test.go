package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/store"
)

func llmEvent(id int, purpose string, ok bool) store.LLMEvent {
	return store.LLMEvent{
		ID:        id,
		Timestamp: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-2.5-flash",
			Purpose:      purpose,
			InputTokens:  1200,
			OutputTokens: 8000,
			LatencyMs:    41234,
			Success:      ok,
		},
	}
}

func TestFilterLLMEvents(t *testing.T) {
	events := []store.LLMEvent{
		llmEvent(4, "question-gen", false),
		llmEvent(3, "other", true),
		llmEvent(2, "question-gen", true),
		llmEvent(1, "question-gen", false),
	}

	ids := func(es []store.LLMEvent) []int {
		var out []int
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}
	assert.Equal(t, []int{4, 3, 2, 1}, ids(filterLLMEvents(events, "", false, 0)))
	assert.Equal(t, []int{4, 2}, ids(filterLLMEvents(events, "question-gen", false, 2)))
	assert.Equal(t, []int{4, 1}, ids(filterLLMEvents(events, "", true, 0)))
	assert.Empty(t, filterLLMEvents(events, "missing", false, 0))
}

func TestPrintLLMEvents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLLMEvents(&buf, []store.LLMEvent{llmEvent(7, "question-gen", false)}))
	out := buf.String()
	assert.Contains(t, out, "question-gen")
	assert.Contains(t, out, "41.2s")
	assert.Contains(t, out, "✗")
}

func TestPrintLLMEvent(t *testing.T) {
	e := llmEvent(9, "question-gen", false)
	e.ErrorMessage = "invalid LLM response: schema"
	e.RequestBody = "[user]\ngere 30 questões"

	var buf bytes.Buffer
	printLLMEvent(&buf, &e)
	out := buf.String()
	assert.Contains(t, out, "#9")
	assert.Contains(t, out, "gemini/gemini-2.5-flash")
	assert.Contains(t, out, "failed: invalid LLM response: schema")
	assert.Contains(t, out, "gere 30 questões")
	assert.Contains(t, out, "(not captured)")
}

func TestPrintLLMUsage(t *testing.T) {
	var buf bytes.Buffer
	err := printLLMUsage(&buf,
		[]store.PurposeUsage{{Purpose: "question-gen", Calls: 3, InputTokens: 3000, OutputTokens: 24000, AvgLatencyMs: 40000}},
		[]store.ModelUsage{
			{Model: "gemini-2.5-flash", Calls: 2, InputTokens: 1_000_000, OutputTokens: 0},
			{Model: "some-local-model", Calls: 1},
		},
	)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "question-gen")
	assert.Contains(t, out, "$0.30")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No pricing for: some-local-model")
}

func TestPrintQuizStats(t *testing.T) {
	finish := func(correct, total int, net float64) store.SessionEvent {
		return store.SessionEvent{
			Timestamp: time.Date(2026, 10, 2, 9, 30, 0, 0, time.UTC),
			SessionEventData: store.SessionEventData{
				Action:         store.ActionFinish,
				Subjects:       []string{"Licitações"},
				Questions:      total,
				CorrectAnswers: correct,
				NetScore:       net,
				DurationSecs:   3725,
			},
		}
	}

	var buf bytes.Buffer
	require.NoError(t, printQuizStats(&buf, []store.SessionEvent{finish(8, 10, 7.5), finish(2, 10, 0.5)}, 1))
	out := buf.String()
	assert.Contains(t, out, "01:02:05")
	assert.Contains(t, out, "8/10")
	assert.NotContains(t, out, "2/10", "limit hides the second row")
	assert.Contains(t, out, "2 quizzes, 10/20 correct (50%), average net score 4.00")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "00:00:59", formatDuration(59))
	assert.Equal(t, "10:00:00", formatDuration(36000))
	assert.Zero(t, percent(3, 0))
	assert.Equal(t, 75.0, percent(3, 4))
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "$0.0012", formatCost(0.0012))
	assert.Equal(t, "$1.50", formatCost(1.5))

	finished := finishedEvents([]store.SessionEvent{
		{SessionEventData: store.SessionEventData{Action: store.ActionStart}},
		{SessionEventData: store.SessionEventData{Action: store.ActionFinish}},
	})
	assert.Len(t, finished, 1)
}

func TestCommandsOnEmptyStore(t *testing.T) {
	t.Setenv("SIMULADO_DB_DRIVER", "")
	db := filepath.Join(t.TempDir(), "simulado.db")

	run := func(args ...string) string {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append(args, "--db", db))
		require.NoError(t, rootCmd.Execute(), strings.Join(args, " "))
		return out.String()
	}

	assert.Contains(t, run("stats"), "No finished quizzes yet.")
	assert.Contains(t, run("llm", "list"), "No LLM calls found.")
	assert.Contains(t, run("llm", "stats"), "No LLM usage recorded yet.")
}

func TestBuildDepsWithoutLLMKey(t *testing.T) {
	for _, k := range []string{
		"SIMULADO_LLM_PROVIDER", "SIMULADO_DB_DRIVER", "SIMULADO_BANK",
		"SIMULADO_REDIS_ADDR", "SIMULADO_AMQP_URL",
		"SIMULADO_GEMINI_API_KEY", "SIMULADO_OPENAI_API_KEY",
		"SIMULADO_ANTHROPIC_API_KEY", "SIMULADO_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	db := filepath.Join(t.TempDir(), "simulado.db")
	require.NoError(t, serveCmd.ParseFlags([]string{"--db", db}))
	t.Cleanup(func() { _ = serveCmd.Flags().Set("db", "") })

	d, err := buildDeps(serveCmd)
	require.NoError(t, err)
	t.Cleanup(d.Close)

	_, err = d.provider.Generate(context.Background(), exam.QuizConfig{
		Subjects:      []exam.Subject{exam.SubjectLicitacoes},
		QuestionCount: 5,
	})
	require.ErrorIs(t, err, questionbank.ErrProviderFailure)

	var pf *questionbank.ProviderFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "credentials", pf.Reason)
}

func TestVersion(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })
	version = "v1.0.0"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "simulado v1.0.0 (go"), out.String())
}
