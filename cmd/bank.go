package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage offline question banks",
}

var bankGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question bank and write it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectArgs, _ := cmd.Flags().GetStringSlice("subject")
		count, _ := cmd.Flags().GetInt("count")
		out, _ := cmd.Flags().GetString("out")

		cfg := exam.QuizConfig{QuestionCount: count}
		if len(subjectArgs) == 0 {
			cfg.Subjects = exam.AllSubjects()
		}
		for _, a := range subjectArgs {
			s, err := exam.ParseSubject(a)
			if err != nil {
				return err
			}
			cfg.Subjects = append(cfg.Subjects, s)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		questions, err := d.provider.Generate(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("generate bank: %w", err)
		}

		w := os.Stdout
		if out != "" && out != "-" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}
		if err := questionbank.Export(w, questions); err != nil {
			return fmt.Errorf("write bank: %w", err)
		}
		if w != os.Stdout {
			fmt.Fprintf(os.Stderr, "wrote %d questions to %s\n", len(questions), out)
		}
		return nil
	},
}

func init() {
	bankGenerateCmd.Flags().StringSliceP("subject", "s", nil, "Subject slug or label (repeatable; default all)")
	bankGenerateCmd.Flags().IntP("count", "n", 30, "Number of questions")
	bankGenerateCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")

	bankCmd.AddCommand(bankGenerateCmd)
}
