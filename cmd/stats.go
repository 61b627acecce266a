package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/abhisek/simulado/internal/config"
	"github.com/abhisek/simulado/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show results of finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd, config.FromEnv())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		all, err := s.EventRepo().QuerySessionEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query session events: %w", err)
		}
		finished := finishedEvents(all)
		if len(finished) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No finished quizzes yet.")
			return nil
		}
		return printQuizStats(cmd.OutOrStdout(), finished, limit)
	},
}

// printQuizStats lists up to limit quizzes (newest first) and a summary
// line over all of them.
func printQuizStats(w io.Writer, finished []store.SessionEvent, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Finished\tTime\tCorrect\tPct\tNet\tSubjects")
	var questions, correct int
	var net float64
	for i, e := range finished {
		questions += e.Questions
		correct += e.CorrectAnswers
		net += e.NetScore
		if limit > 0 && i >= limit {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%.0f%%\t%.2f\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			formatDuration(e.DurationSecs),
			e.CorrectAnswers, e.Questions,
			percent(e.CorrectAnswers, e.Questions),
			e.NetScore,
			strings.Join(e.Subjects, ", "),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d quizzes, %d/%d correct (%.0f%%), average net score %.2f\n",
		len(finished), correct, questions, percent(correct, questions), net/float64(len(finished)))
	return err
}

func finishedEvents(all []store.SessionEvent) []store.SessionEvent {
	var out []store.SessionEvent
	for _, e := range all {
		if e.Action == store.ActionFinish {
			out = append(out, e)
		}
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to list")
}
