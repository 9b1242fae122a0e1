package models

// Plan is the finalized triage for a session: one urgent task, one
// important task and everything else as routine work.
type Plan struct {
	// P1 is the chosen urgent task. Empty when no task was chosen.
	P1 string `json:"p1,omitempty"`
	// P2 is the chosen important task. Empty when no task was chosen.
	P2 string `json:"p2,omitempty"`
	// P3 holds the remaining tasks in their original order.
	P3 []string `json:"p3,omitempty"`
}

// Empty returns true if the plan holds no tasks at all.
func (p Plan) Empty() bool {
	return p.P1 == "" && p.P2 == "" && len(p.P3) == 0
}

// Len returns the number of tasks placed in the plan.
func (p Plan) Len() int {
	n := len(p.P3)
	if p.P1 != "" {
		n++
	}
	if p.P2 != "" {
		n++
	}
	return n
}
