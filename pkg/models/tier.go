package models

// Tier represents the priority tier assigned to a task.
type Tier string

const (
	// TierP1 is for urgent work: client-facing, escalations, production.
	TierP1 Tier = "P1"
	// TierP2 is for important work: bugs, reviews, SLA items.
	TierP2 Tier = "P2"
	// TierP3 is for routine work and anything that matches no keyword.
	TierP3 Tier = "P3"
)

// Tiers lists every tier from most to least urgent.
var Tiers = []Tier{TierP1, TierP2, TierP3}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}
