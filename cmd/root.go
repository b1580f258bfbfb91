package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mindflow/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindflow",
	Short: "AI exam coach for SSLC students",
	Long:  "MindFlow is a terminal tutor for SSLC board exams: it generates board-style questions, grades answers strictly, predicts the exam result, and answers doubts with web-grounded search.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDFLOW_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then MINDFLOW_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
