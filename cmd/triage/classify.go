package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/triage/internal/classify"
	"github.com/ShayCichocki/triage/internal/config"
	"github.com/ShayCichocki/triage/internal/loader"
	"github.com/ShayCichocki/triage/internal/workflow"
)

var (
	classifyTasks   string
	classifyWatch   bool
	classifySuggest string
)

var classifyCmd = &cobra.Command{
	Use:   "classify [task...]",
	Short: "Print the suggested priority for tasks without prompting",
	Long: `Classify tasks into P1/P2/P3 and print the suggestion, without the
interactive selection.

Tasks come from the arguments (each argument is a task; "a; b" is split on
semicolons), from --tasks, or from the configured task source.

With --watch, the task file is re-read and re-classified every time it
changes, until interrupted.

Examples:
  triage classify "Fix prod outage" "Review PR #9" "Lunch"
  triage classify --tasks todo.yaml --watch`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyTasks, "tasks", "", "Task file or SQLite database")
	classifyCmd.Flags().BoolVar(&classifyWatch, "watch", false, "Re-classify whenever the task file changes")
	classifyCmd.Flags().StringVar(&classifySuggest, "suggest", "", "Suggestion mode: local, anthropic or bedrock")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("tasks") {
		cfg.Tasks.Path = classifyTasks
		cfg.Tasks.Source = sourceForPath(classifyTasks)
	}
	if cmd.Flags().Changed("suggest") {
		cfg.Suggest.Mode = strings.ToLower(classifySuggest)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	suggester, _, err := newSuggester(ctx, cfg)
	if err != nil {
		printStatus(cmd.ErrOrStderr(), "⚠", fmt.Sprintf("%v; using local suggestions", err), color.FgYellow)
	}

	if len(args) > 0 {
		if classifyWatch {
			return fmt.Errorf("--watch needs a task file, not arguments")
		}
		return printSuggestion(ctx, out, suggester, cfg.Suggest.Timeout, classify.SplitJoined(strings.Join(args, ";")))
	}

	source, err := loader.New(taskOptions(cfg))
	if err != nil {
		return err
	}

	if err := classifySource(ctx, out, source, suggester, cfg.Suggest.Timeout); err != nil {
		return err
	}
	if !classifyWatch {
		return nil
	}

	if cfg.Tasks.Path == "" {
		return fmt.Errorf("--watch needs a task file (--tasks or tasks.path)")
	}

	fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)...\n", cfg.Tasks.Path)
	return loader.Watch(ctx, cfg.Tasks.Path, func() {
		fmt.Fprintf(out, "\n%s %s changed\n", color.CyanString("↻"), cfg.Tasks.Path)
		if err := classifySource(ctx, out, source, suggester, cfg.Suggest.Timeout); err != nil {
			printStatus(out, "✗", err.Error(), color.FgRed)
		}
	})
}

func classifySource(ctx context.Context, out io.Writer, source loader.Source, suggester workflow.Suggester, timeout time.Duration) error {
	tasks, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	return printSuggestion(ctx, out, suggester, timeout, tasks)
}

// printSuggestion prints the suggester's view of tasks, falling back to the
// local classifier if the suggester fails.
func printSuggestion(ctx context.Context, out io.Writer, suggester workflow.Suggester, timeout time.Duration, tasks []string) error {
	if len(tasks) == 0 {
		fmt.Fprintln(out, classify.NoTasksMessage)
		return nil
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := suggester.Suggest(ctx, classify.JoinTasks(tasks))
	if err != nil {
		printStatus(out, "⚠", fmt.Sprintf("suggestion failed (%v); showing local classification", err), color.FgYellow)
		text = classify.Render(classify.ClassifyAll(tasks))
	}

	fmt.Fprintln(out, text)
	return nil
}
