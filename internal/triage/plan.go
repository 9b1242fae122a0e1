package triage

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/triage/pkg/models"
)

// BuildPlan assigns the selected positions to P1 and P2 and every other
// position, in original order, to P3.
func BuildPlan(tasks []string, sel Selection) models.Plan {
	valid := func(i int) bool { return i >= 0 && i < len(tasks) }

	plan := models.Plan{P3: make([]string, 0, len(tasks))}
	if valid(sel.P1) {
		plan.P1 = tasks[sel.P1]
	}
	if valid(sel.P2) && sel.P2 != sel.P1 {
		plan.P2 = tasks[sel.P2]
	}

	for i, task := range tasks {
		if (i == sel.P1 && valid(sel.P1)) || (i == sel.P2 && valid(sel.P2)) {
			continue
		}
		plan.P3 = append(plan.P3, task)
	}
	return plan
}

// RenderPlan formats the final plan. Empty slots are omitted.
func RenderPlan(plan models.Plan) string {
	var b strings.Builder
	b.WriteString("Final plan for today:\n")
	if plan.P1 != "" {
		fmt.Fprintf(&b, "  P1: %s\n", plan.P1)
	}
	if plan.P2 != "" {
		fmt.Fprintf(&b, "  P2: %s\n", plan.P2)
	}
	if len(plan.P3) > 0 {
		b.WriteString("  P3:\n")
		for _, task := range plan.P3 {
			fmt.Fprintf(&b, "   • %s\n", task)
		}
	}
	return b.String()
}

// RenderMenu formats the 1-indexed task list shown before the prompt.
func RenderMenu(tasks []string) string {
	var b strings.Builder
	b.WriteString("Your tasks (choose P1 and P2 by number, comma-separated):\n")
	for i, task := range tasks {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, task)
	}
	return b.String()
}

// PromptMessage is the selection question, showing the current defaults.
func PromptMessage(tasks []string, defaults Selection) string {
	return fmt.Sprintf("Pick P1,P2 (e.g., 1,2). Press Enter for defaults [P1='%s', P2='%s']: ",
		slotLabel(tasks, defaults.P1), slotLabel(tasks, defaults.P2))
}

func slotLabel(tasks []string, pos int) string {
	if pos < 0 || pos >= len(tasks) || tasks[pos] == "" {
		return "-"
	}
	return tasks[pos]
}
