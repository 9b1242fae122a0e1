package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/triage/internal/config"
	"github.com/ShayCichocki/triage/internal/loader"
	"github.com/ShayCichocki/triage/internal/logging"
	"github.com/ShayCichocki/triage/internal/triage"
	"github.com/ShayCichocki/triage/internal/tui"
	"github.com/ShayCichocki/triage/internal/workflow"
)

func runTriage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	logger := openLogger(cfg)
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Println("[triage] received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	var prompter triage.Prompter
	if cfg.Prompt.TUI {
		// The prompt owns the terminal; keep log noise out of it.
		originalOutput := log.Writer()
		log.SetOutput(io.Discard)
		defer log.SetOutput(originalOutput)

		prompter = tui.NewPrompter(os.Stdin, os.Stdout)
	} else {
		prompter = triage.NewLinePrompter(os.Stdin, os.Stdout)
	}

	_, err = runSession(ctx, cfg, prompter, os.Stdout, logger)
	return err
}

// runSession asks for the user's name if needed and drives one triage run.
func runSession(ctx context.Context, cfg *config.Config, prompter triage.Prompter, out io.Writer, logger *logging.DebugLogger) (workflow.State, error) {
	source, err := loader.New(taskOptions(cfg))
	if err != nil {
		return workflow.State{}, err
	}

	suggester, client, err := newSuggester(ctx, cfg)
	if err != nil {
		printStatus(out, "⚠", fmt.Sprintf("%v; using local suggestions", err), color.FgYellow)
		logger.Log("[triage] remote suggester unavailable: %v", err)
	}

	user := cfg.User.Name
	if user == "" {
		answer, err := prompter.Prompt(ctx, "Enter your name: ")
		if err != nil {
			logger.Log("[triage] name prompt failed: %v", err)
		}
		user = strings.TrimSpace(answer)
	}

	driver, err := workflow.New(workflow.Config{
		Source:         source,
		Owner:          taskOwner(cfg),
		Suggester:      suggester,
		SuggestTimeout: cfg.Suggest.Timeout,
		Session: &triage.Session{
			Prompter:      prompter,
			Out:           out,
			PromptTimeout: cfg.Prompt.Timeout,
			Logger:        logger,
		},
		Out:    out,
		Logger: logger,
	})
	if err != nil {
		return workflow.State{}, err
	}

	state, err := driver.Run(ctx, user)
	if client != nil {
		logger.Log("[triage] suggestion usage (%s): %s", client.Model(), client.Usage())
	}
	return state, err
}

// applyFlags overlays explicitly set command-line flags onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("name") {
		cfg.User.Name = flagName
	}
	if flags.Changed("tasks") {
		cfg.Tasks.Path = flagTasks
		if !flags.Changed("source") {
			cfg.Tasks.Source = sourceForPath(flagTasks)
		}
	}
	if flags.Changed("source") {
		cfg.Tasks.Source = strings.ToLower(flagSource)
	}
	if flags.Changed("suggest") {
		cfg.Suggest.Mode = strings.ToLower(flagSuggest)
	}
	if flags.Changed("tui") {
		cfg.Prompt.TUI = flagTUI
	}
	if flags.Changed("timeout") {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg.Prompt.Timeout = d
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = flagDebug
	}

	return cfg.Validate()
}

// sourceForPath picks a task source kind from a file extension.
func sourceForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return loader.KindSQLite
	default:
		return loader.KindFile
	}
}

func taskOptions(cfg *config.Config) loader.Options {
	return loader.Options{
		Kind:   cfg.Tasks.Source,
		Path:   cfg.Tasks.Path,
		Table:  cfg.Tasks.Table,
		Column: cfg.Tasks.Column,
		Filter: cfg.Tasks.Filter,
	}
}

// taskOwner names who handed out the tasks. The sample list has a fixed owner.
func taskOwner(cfg *config.Config) string {
	if cfg.Tasks.Owner != "" {
		return cfg.Tasks.Owner
	}
	if cfg.Tasks.Source == loader.KindSample {
		return loader.SampleOwner
	}
	return ""
}

func openLogger(cfg *config.Config) *logging.DebugLogger {
	if !cfg.Log.Debug {
		return logging.NopLogger()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return logging.NopLogger()
	}
	return logging.NewDebugLoggerIn(cwd)
}

func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
