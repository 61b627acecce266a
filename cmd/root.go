package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/simulado/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simulado",
	Short: "Cebraspe-style practice exams in the terminal",
	Long:  "Simulado generates Cebraspe-style multiple choice exams for Analista Fazendário and scores them with the wrong-answer penalty.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Event store path or DSN (overrides SIMULADO_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Serve quizzes from a JSON question bank instead of the LLM (overrides SIMULADO_BANK)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the SQLite path using --db flag (highest priority),
// then SIMULADO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
