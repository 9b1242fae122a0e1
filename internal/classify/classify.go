package classify

import (
	"strings"

	"github.com/ShayCichocki/triage/pkg/models"
)

// Classify returns the tier for a task description.
// This is a convenience wrapper around ClassifyWithReason.
func Classify(task string) models.Tier {
	return ClassifyWithReason(task).Tier
}

// Result maps each tier to its tasks, in the order they appeared in the input.
type Result map[models.Tier][]string

// ClassifyAll buckets every task by tier. Each input entry lands in exactly
// one tier and relative order is preserved within a tier.
func ClassifyAll(tasks []string) Result {
	result := Result{}
	for _, task := range tasks {
		tier := Classify(task)
		result[tier] = append(result[tier], task)
	}
	return result
}

// Len returns the total number of classified tasks.
func (r Result) Len() int {
	n := 0
	for _, tier := range models.Tiers {
		n += len(r[tier])
	}
	return n
}

// taskSeparator joins tasks on the suggestion wire format.
const taskSeparator = "; "

// JoinTasks encodes a task list as the single string sent to a suggester.
func JoinTasks(tasks []string) string {
	return strings.Join(tasks, taskSeparator)
}

// SplitJoined decodes a joined task string. Entries are trimmed and blank
// entries are dropped.
func SplitJoined(joined string) []string {
	var tasks []string
	for _, part := range strings.Split(joined, ";") {
		if t := strings.TrimSpace(part); t != "" {
			tasks = append(tasks, t)
		}
	}
	return tasks
}
