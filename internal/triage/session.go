package triage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/ShayCichocki/triage/internal/logging"
	"github.com/ShayCichocki/triage/pkg/models"
)

// InvalidInputWarning is shown when a selection can't be used.
const InvalidInputWarning = "Invalid input. Using defaults."

var warn = color.New(color.FgYellow)

// Session runs the interactive P1/P2 selection for one task list.
type Session struct {
	// Prompter asks for the selection. Required unless every run has no tasks.
	Prompter Prompter
	// Out receives the menu, warnings and final plan.
	Out io.Writer
	// PromptTimeout bounds the wait for an answer. Zero waits forever.
	PromptTimeout time.Duration
	// Logger receives debug details. May be nil.
	Logger *logging.DebugLogger
}

// Run shows the tasks, asks for an override, and prints the final plan.
// Bad or missing input falls back to the defaults. The only errors returned
// come from ctx: a run cancelled before or during the prompt prints no plan.
func (s *Session) Run(ctx context.Context, tasks []string) (models.Plan, error) {
	if err := ctx.Err(); err != nil {
		return models.Plan{}, err
	}

	out := s.Out
	if out == nil {
		out = io.Discard
	}

	defaults := Defaults(tasks)
	sel := defaults

	if len(tasks) > 0 {
		fmt.Fprintf(out, "\n%s\n", RenderMenu(tasks))
		var err error
		if sel, err = s.ask(ctx, out, tasks, defaults); err != nil {
			return models.Plan{}, err
		}
	}

	plan := BuildPlan(tasks, sel)
	s.Logger.Log("[triage] selection P1=%d P2=%d, plan has %d task(s)", sel.P1, sel.P2, plan.Len())

	fmt.Fprint(out, RenderPlan(plan))
	return plan, nil
}

// ask prompts once and resolves the answer, falling back to defaults on any
// problem except cancellation of ctx itself.
func (s *Session) ask(ctx context.Context, out io.Writer, tasks []string, defaults Selection) (Selection, error) {
	if s.Prompter == nil {
		s.Logger.Log("[triage] no prompter configured, using defaults")
		return defaults, nil
	}

	promptCtx := ctx
	if s.PromptTimeout > 0 {
		var cancel context.CancelFunc
		promptCtx, cancel = context.WithTimeout(ctx, s.PromptTimeout)
		defer cancel()
	}

	answer, err := s.Prompter.Prompt(promptCtx, PromptMessage(tasks, defaults))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.Logger.Log("[triage] prompt abandoned: %v", ctxErr)
			return defaults, ctxErr
		}
		fmt.Fprintln(out)
		if errors.Is(err, context.DeadlineExceeded) {
			warn.Fprintln(out, "No selection before timeout. Using defaults.")
		} else {
			warn.Fprintln(out, "No selection received. Using defaults.")
		}
		s.Logger.Log("[triage] prompt failed: %v", err)
		return defaults, nil
	}

	sel, err := Resolve(tasks, answer)
	if err != nil {
		warn.Fprintln(out, InvalidInputWarning)
		s.Logger.Log("[triage] rejected selection %q: %v", answer, err)
		return defaults, nil
	}
	return sel, nil
}
