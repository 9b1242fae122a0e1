package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/fatih/color"

	"github.com/ShayCichocki/triage/internal/classify"
	"github.com/ShayCichocki/triage/internal/loader"
	"github.com/ShayCichocki/triage/internal/logging"
	"github.com/ShayCichocki/triage/pkg/models"
)

var (
	// ErrStageFailed wraps any error that aborts a run.
	ErrStageFailed = errors.New("stage failed")
	// ErrUnexpectedStage indicates a step did not land on the next stage.
	ErrUnexpectedStage = errors.New("unexpected stage")
)

// Suggester produces advisory priority text for a "; "-joined task list.
type Suggester interface {
	Suggest(ctx context.Context, joined string) (string, error)
}

// Session resolves the final plan for a task list.
type Session interface {
	Run(ctx context.Context, tasks []string) (models.Plan, error)
}

// Config holds the collaborators of a run.
type Config struct {
	// Source loads the task list. Required.
	Source loader.Source
	// Owner is named in the "added to your bucket" banner.
	Owner string
	// Suggester provides the advisory suggestion. Defaults to the local classifier.
	Suggester Suggester
	// SuggestTimeout bounds the suggestion call. Zero means no limit.
	SuggestTimeout time.Duration
	// Session resolves the plan. Required.
	Session Session
	// Out receives all user-facing output. Defaults to io.Discard.
	Out io.Writer
	// Logger receives debug details. May be nil.
	Logger *logging.DebugLogger
}

// step advances a State by exactly one stage.
type step func(ctx context.Context, s State) (State, error)

// Driver runs the triage stages in order.
type Driver struct {
	cfg   Config
	steps map[Stage]step
}

// New creates a Driver from cfg.
func New(cfg Config) (*Driver, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("workflow: task source is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("workflow: session is required")
	}
	if cfg.Suggester == nil {
		cfg.Suggester = classify.LocalSuggester{}
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	d := &Driver{cfg: cfg}
	d.steps = map[Stage]step{
		StageStart:       d.greet,
		StageGreeted:     d.load,
		StageLoaded:      d.prioritize,
		StagePrioritized: d.finish,
	}
	return d, nil
}

// Run executes every stage for user and returns the final state. On failure
// it returns the last good state and an error wrapping ErrStageFailed.
func (d *Driver) Run(ctx context.Context, user string) (State, error) {
	state := NewState(user)
	d.cfg.Logger.Log("[workflow] run %s started for %q", state.ID, user)

	for !state.Stage.Terminal() {
		from := state.Stage
		want, ok := from.Next()
		fn, hasStep := d.steps[from]
		if !ok || !hasStep {
			return state, fmt.Errorf("%w: %s: %w", ErrStageFailed, from, ErrUnexpectedStage)
		}

		if err := ctx.Err(); err != nil {
			return state, fmt.Errorf("%w: %s: %w", ErrStageFailed, from, err)
		}

		next, err := fn(ctx, state.Clone())
		if err != nil {
			d.cfg.Logger.Log("[workflow] run %s failed in %s: %v", state.ID, from, err)
			return state, fmt.Errorf("%w: %s: %w", ErrStageFailed, from, err)
		}
		if !CanTransition(from, next.Stage) || next.Stage != want {
			return state, fmt.Errorf("%w: %s: %w: got %s, want %s",
				ErrStageFailed, from, ErrUnexpectedStage, next.Stage, want)
		}

		d.cfg.Logger.Log("[workflow] run %s: %s -> %s", state.ID, from, next.Stage)
		state = next
	}

	return state, nil
}

func (d *Driver) greet(ctx context.Context, s State) (State, error) {
	name := s.User
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(d.cfg.Out, "Hi %s! Good morning — looks like a busy day.\n", name)

	s.Stage = StageGreeted
	return s, nil
}

func (d *Driver) load(ctx context.Context, s State) (State, error) {
	tasks, err := d.cfg.Source.Load(ctx)
	if err != nil {
		return s, fmt.Errorf("load tasks: %w", err)
	}
	loader.Announce(d.cfg.Out, d.cfg.Owner, tasks)

	s.Tasks = tasks
	s.Stage = StageLoaded
	return s, nil
}

func (d *Driver) prioritize(ctx context.Context, s State) (State, error) {
	s.Classification = classify.ClassifyAll(s.Tasks)
	d.cfg.Logger.Log("[classify] %d task(s): P1=%d P2=%d P3=%d", s.Classification.Len(),
		len(s.Classification[models.TierP1]), len(s.Classification[models.TierP2]), len(s.Classification[models.TierP3]))
	for _, task := range s.Tasks {
		sel := classify.ClassifyWithReason(task)
		d.cfg.Logger.Log("[classify] %q -> %s (%s)", task, sel.Tier, sel.Reason)
	}

	s.Suggestion = d.suggest(ctx, s.Tasks)
	if s.Suggestion != "" {
		fmt.Fprintf(d.cfg.Out, "\nSuggested priority:\n%s\n", s.Suggestion)
	}

	plan, err := d.cfg.Session.Run(ctx, s.Tasks)
	if err != nil {
		return s, fmt.Errorf("resolve plan: %w", err)
	}

	s.Plan = plan
	s.Stage = StagePrioritized
	return s, nil
}

// suggest asks the Suggester for advisory text. Failures are reported and
// yield an empty suggestion; they never stop the run.
func (d *Driver) suggest(ctx context.Context, tasks []string) string {
	if len(tasks) == 0 {
		return classify.NoTasksMessage
	}

	suggestCtx := ctx
	if d.cfg.SuggestTimeout > 0 {
		var cancel context.CancelFunc
		suggestCtx, cancel = context.WithTimeout(ctx, d.cfg.SuggestTimeout)
		defer cancel()
	}

	text, err := d.cfg.Suggester.Suggest(suggestCtx, classify.JoinTasks(tasks))
	if err != nil {
		log.Printf("[triage] priority suggestion failed: %v", err)
		d.cfg.Logger.Log("[workflow] suggestion failed: %v", err)
		color.New(color.Faint).Fprintln(d.cfg.Out, "\n(priority suggestion unavailable, using local defaults)")
		return ""
	}
	return text
}

func (d *Driver) finish(ctx context.Context, s State) (State, error) {
	s.FinishedAt = time.Now()
	s.Stage = StageDone

	if s.Plan.Empty() {
		d.cfg.Logger.Log("[workflow] run %s had nothing to triage", s.ID)
	}

	d.cfg.Logger.Log("[workflow] run %s done in %s: P1=%q P2=%q P3=%d",
		s.ID, s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond), s.Plan.P1, s.Plan.P2, len(s.Plan.P3))
	return s, nil
}
