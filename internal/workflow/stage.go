// Package workflow drives a triage run through its fixed sequence of stages.
package workflow

// Stage is a step of the triage run.
type Stage string

const (
	StageStart       Stage = "start"
	StageGreeted     Stage = "greeted"
	StageLoaded      Stage = "loaded"
	StagePrioritized Stage = "prioritized"
	StageDone        Stage = "done"
)

// nextStage is the only allowed transition out of each non-terminal stage.
var nextStage = map[Stage]Stage{
	StageStart:       StageGreeted,
	StageGreeted:     StageLoaded,
	StageLoaded:      StagePrioritized,
	StagePrioritized: StageDone,
}

// Next returns the stage that follows s, or false if s is terminal or unknown.
func (s Stage) Next() (Stage, bool) {
	next, ok := nextStage[s]
	return next, ok
}

// Terminal reports whether no stage follows s.
func (s Stage) Terminal() bool {
	return s == StageDone
}

// CanTransition checks if moving from one stage to another is allowed.
func CanTransition(from, to Stage) bool {
	next, ok := nextStage[from]
	return ok && next == to
}
