package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/triage/internal/classify"
	"github.com/ShayCichocki/triage/pkg/models"
)

// State is the record handed from stage to stage. Every step receives its
// own copy, so a State returned from an earlier stage is never changed by a
// later one.
type State struct {
	ID             string
	Stage          Stage
	User           string
	Tasks          []string
	Classification classify.Result
	Suggestion     string
	Plan           models.Plan
	StartedAt      time.Time
	FinishedAt     time.Time
}

// NewState creates the initial state for a run on behalf of user.
func NewState(user string) State {
	return State{
		ID:        uuid.NewString(),
		Stage:     StageStart,
		User:      user,
		StartedAt: time.Now(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.Tasks != nil {
		out.Tasks = append([]string(nil), s.Tasks...)
	}
	if s.Classification != nil {
		out.Classification = make(classify.Result, len(s.Classification))
		for tier, tasks := range s.Classification {
			out.Classification[tier] = append([]string(nil), tasks...)
		}
	}
	if s.Plan.P3 != nil {
		out.Plan.P3 = append([]string(nil), s.Plan.P3...)
	}
	return out
}
