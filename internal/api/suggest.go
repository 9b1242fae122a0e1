package api

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptySuggestion is returned when the model replies without any text.
var ErrEmptySuggestion = errors.New("empty suggestion")

// suggestMaxTokens bounds the reply; a rendered plan is a handful of lines.
const suggestMaxTokens = 1024

// suggestSystemPrompt describes the tier heuristic and the reply format the
// rest of the pipeline prints verbatim.
const suggestSystemPrompt = `You are a personal task-triage assistant. You will receive a list of tasks separated by semicolons.

Classify every task into exactly one priority tier:
- P1 (urgent): mentions a client, an escalation, or production ("prod").
- P2 (important): mentions a bug, a review, or an SLA.
- P3 (routine): everything else.
Check P1 before P2; a task that qualifies for both is P1.

Reply with plain text only, no commentary. For each non-empty tier, in order P1, P2, P3, write the tier name followed by a colon on its own line, then one line per task starting with "• ". Separate tiers with a blank line. Keep task text exactly as given. If there are no tasks, reply "No tasks."`

// Suggester asks a Claude model for an advisory tier classification.
// Its output is display-only; the session never depends on it.
type Suggester struct {
	client *Client
}

// NewSuggester creates a Suggester backed by client.
func NewSuggester(client *Client) *Suggester {
	return &Suggester{client: client}
}

// Suggest sends the joined task string and returns the model's rendered
// classification.
func (s *Suggester) Suggest(ctx context.Context, joined string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("suggester: client is required")
	}

	out, err := s.client.complete(ctx, suggestSystemPrompt, "Tasks: "+joined, suggestMaxTokens)
	if err != nil {
		return "", fmt.Errorf("suggest priorities: %w", err)
	}
	if out == "" {
		return "", ErrEmptySuggestion
	}
	return out, nil
}
