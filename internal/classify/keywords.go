// Package classify assigns priority tiers to task descriptions using fixed
// keyword rules, and renders the result as a human-readable suggestion.
package classify

import (
	"strings"

	"github.com/ShayCichocki/triage/pkg/models"
)

// Keywords is the single source of truth for tier classification keywords.
// The workflow, the classify command and the local suggester all read it so
// a task lands in the same tier everywhere.
type Keywords struct {
	// P1 keywords mark urgent work: clients, escalations, production.
	P1 []string

	// P2 keywords mark important but not urgent work.
	P2 []string

	// P3 has no keywords - it is the fallback tier.
}

// DefaultKeywords holds the authoritative keyword mappings.
var DefaultKeywords = Keywords{
	P1: []string{
		"client",
		"escalation",
		"prod",
	},
	P2: []string{
		"bug",
		"review",
		"sla",
	},
}

// Selection is a tier decision together with the keyword that caused it.
type Selection struct {
	// Tier is the selected tier.
	Tier models.Tier
	// MatchedKeyword is the keyword that triggered this selection (if any).
	MatchedKeyword string
	// Reason explains why this tier was selected.
	Reason string
}

// ClassifyWithReason selects a tier for a task description. Matching is a
// case-insensitive substring check and P1 keywords are always checked before
// P2 keywords, so a task mentioning both lands in P1.
func ClassifyWithReason(task string) Selection {
	return DefaultKeywords.Classify(task)
}

// Classify applies the keyword rules of k to a single task description.
func (k Keywords) Classify(task string) Selection {
	lower := strings.ToLower(task)

	if kw, ok := firstMatch(lower, k.P1); ok {
		return Selection{
			Tier:           models.TierP1,
			MatchedKeyword: kw,
			Reason:         "matched P1 keyword",
		}
	}

	if kw, ok := firstMatch(lower, k.P2); ok {
		return Selection{
			Tier:           models.TierP2,
			MatchedKeyword: kw,
			Reason:         "matched P2 keyword",
		}
	}

	return Selection{
		Tier:   models.TierP3,
		Reason: "no keyword match, defaulting to P3",
	}
}

func firstMatch(lower string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}
