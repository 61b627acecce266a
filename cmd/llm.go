package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/abhisek/simulado/internal/config"
	"github.com/abhisek/simulado/internal/llm"
	"github.com/abhisek/simulado/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged question generation calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore(cmd, config.FromEnv())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		opts := store.QueryOpts{}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		// Filters run client side, so fetch everything and cut after.
		all, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		events := filterLLMEvents(all, purpose, failed, limit)
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No LLM calls found.")
			return nil
		}
		return printLLMEvents(cmd.OutOrStdout(), events)
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and raw response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd, config.FromEnv())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("LLM call %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd, config.FromEnv())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		repo := s.EventRepo()
		purposes, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(purposes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No LLM usage recorded yet.")
			return nil
		}
		models, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		return printLLMUsage(cmd.OutOrStdout(), purposes, models)
	},
}

// filterLLMEvents keeps events matching purpose (any when empty) and, with
// failedOnly, only failures. limit <= 0 keeps all.
func filterLLMEvents(events []store.LLMEvent, purpose string, failedOnly bool, limit int) []store.LLMEvent {
	var out []store.LLMEvent
	for _, e := range events {
		if purpose != "" && e.Purpose != purpose {
			continue
		}
		if failedOnly && e.Success {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func printLLMEvents(w io.Writer, events []store.LLMEvent) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tTime\tPurpose\tModel\tIn\tOut\tLatency\tOK\t")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t\n",
			e.ID,
			e.Timestamp.Local().Format("01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 32),
			e.InputTokens,
			e.OutputTokens,
			(time.Duration(e.LatencyMs) * time.Millisecond).Round(100*time.Millisecond),
			ok,
		)
	}
	return tw.Flush()
}

func printLLMEvent(w io.Writer, e *store.LLMEvent) {
	status := "ok"
	if !e.Success {
		status = "failed: " + e.ErrorMessage
	}
	fmt.Fprintf(w, "#%d  %s  %s/%s  [%s]\n", e.ID,
		e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Provider, e.Model, e.Purpose)
	fmt.Fprintf(w, "%d tokens in, %d out, %dms, %s\n", e.InputTokens, e.OutputTokens, e.LatencyMs, status)

	section := func(name, body string) {
		fmt.Fprintf(w, "\n── %s %s\n", name, strings.Repeat("─", max(0, 56-len(name))))
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w, body)
	}
	section("request", e.RequestBody)
	section("response", e.ResponseBody)
}

func printLLMUsage(w io.Writer, purposes []store.PurposeUsage, models []store.ModelUsage) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Purpose\tCalls\tInput\tOutput\tAvg latency\t")
	var calls, in, out int
	for _, p := range purposes {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%dms\t\n", p.Purpose, p.Calls, p.InputTokens, p.OutputTokens, p.AvgLatencyMs)
		calls += p.Calls
		in += p.InputTokens
		out += p.OutputTokens
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\t\n", calls, in, out)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(models) == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nEstimated cost (successful calls, USD)")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Model\tCalls\tInput\tOutput\tCost\t")
	var total float64
	var unpriced []string
	for _, m := range models {
		cost := "?"
		if price := llm.LookupCost(m.Model); price != nil {
			c := price.Cost(m.InputTokens, m.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, m.Model)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, cost)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Fprintf(tw, "%s\t\t\t\t%s\t\n", label, formatCost(total))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls with this purpose (e.g. question-gen)")
	llmListCmd.Flags().Bool("failed", false, "Only failed calls")
	llmListCmd.Flags().Duration("since", 0, "Only calls newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
