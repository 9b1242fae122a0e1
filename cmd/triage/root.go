package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagName    string
	flagTasks   string
	flagSource  string
	flagSuggest string
	flagTUI     bool
	flagTimeout string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Personal task-triage assistant",
	Long: `Triage loads your task list, suggests a priority for each task and
asks you to confirm or override today's P1 and P2. Everything else becomes P3.

Tasks are classified by keyword:
  P1  client, escalation, prod
  P2  bug, review, sla
  P3  everything else

With no flags, triage runs on a built-in sample list. Point it at your own
tasks with --tasks (a YAML or text file, or a SQLite database).

Examples:
  triage                          # Sample tasks
  triage --tasks todo.yaml        # Tasks from a YAML list
  triage --tasks tickets.db       # Tasks from a SQLite table
  triage --suggest anthropic      # Ask Claude for the suggested priority
  triage --tui --timeout 2m       # Full-screen prompt, defaults after 2 minutes`,
	SilenceUsage: true,
	RunE:         runTriage,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagName, "name", "", "Your name (skips the name prompt)")
	rootCmd.Flags().StringVar(&flagTasks, "tasks", "", "Task file (.yaml, .yml, .txt) or SQLite database (.db, .sqlite)")
	rootCmd.Flags().StringVar(&flagSource, "source", "", "Task source: sample, file or sqlite (default: from config or --tasks extension)")
	rootCmd.Flags().StringVar(&flagSuggest, "suggest", "", "Suggestion mode: local, anthropic or bedrock")
	rootCmd.Flags().BoolVar(&flagTUI, "tui", false, "Use the full-screen selection prompt")
	rootCmd.Flags().StringVar(&flagTimeout, "timeout", "", "Use defaults if no selection is made within this duration (e.g. 90s)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to .triage/logs/triage-debug.log")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
