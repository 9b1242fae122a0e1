package classify

import (
	"context"
	"strings"

	"github.com/ShayCichocki/triage/pkg/models"
)

// NoTasksMessage is rendered when there is nothing to classify.
const NoTasksMessage = "No tasks."

// Render formats a classification as tier blocks:
//
//	P1:
//	• Resolve client escalation
//
//	P2:
//	• Review PR #23
//
// Empty tiers are omitted; when every tier is empty NoTasksMessage is returned.
func Render(r Result) string {
	var blocks []string
	for _, tier := range models.Tiers {
		tasks := r[tier]
		if len(tasks) == 0 {
			continue
		}
		var b strings.Builder
		b.WriteString(string(tier))
		b.WriteString(":")
		for _, task := range tasks {
			b.WriteString("\n• ")
			b.WriteString(task)
		}
		blocks = append(blocks, b.String())
	}
	if len(blocks) == 0 {
		return NoTasksMessage
	}
	return strings.Join(blocks, "\n\n")
}

// LocalSuggester produces suggestions in-process with the keyword rules.
// It is used when no remote suggestion service is configured.
type LocalSuggester struct{}

// Suggest classifies a joined task string and renders the result.
func (LocalSuggester) Suggest(ctx context.Context, joined string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Render(ClassifyAll(SplitJoined(joined))), nil
}
