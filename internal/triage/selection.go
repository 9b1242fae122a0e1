// Package triage resolves which tasks become today's P1 and P2.
//
// Selections are list positions, not task text, so duplicate descriptions
// can be told apart. Input problems never fail a session: they fall back to
// the tier-derived defaults.
package triage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ShayCichocki/triage/internal/classify"
	"github.com/ShayCichocki/triage/pkg/models"
)

// NoTask marks an empty slot in a Selection.
const NoTask = -1

// ErrInvalidSelection is returned for selection input that cannot be used.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection holds the 0-based positions chosen for P1 and P2.
type Selection struct {
	P1 int
	P2 int
}

// Empty is the selection with both slots unset.
var Empty = Selection{P1: NoTask, P2: NoTask}

// Defaults computes the tier-derived picks for tasks.
//
// P1 is the first P1-classified task, else the first task. P2 is the first
// task, scanning P2-classified tasks then the whole list, whose position and
// text both differ from P1.
func Defaults(tasks []string) Selection {
	if len(tasks) == 0 {
		return Empty
	}

	p1 := 0
	for i, task := range tasks {
		if classify.Classify(task) == models.TierP1 {
			p1 = i
			break
		}
	}
	return Selection{P1: p1, P2: defaultP2(tasks, p1)}
}

// defaultP2 picks the default P2 position relative to an already chosen p1.
func defaultP2(tasks []string, p1 int) int {
	var p1Text string
	if p1 >= 0 && p1 < len(tasks) {
		p1Text = tasks[p1]
	}

	differs := func(i int) bool {
		return i != p1 && (p1 == NoTask || tasks[i] != p1Text)
	}

	for i, task := range tasks {
		if classify.Classify(task) == models.TierP2 && differs(i) {
			return i
		}
	}
	for i := range tasks {
		if differs(i) {
			return i
		}
	}
	return NoTask
}

// ParseSelection parses "a,b" style input into 0-based positions.
// Empty input yields no positions and no error. Blank parts are skipped, so
// "1," is the same as "1". Every remaining part must be an index in 1..n;
// only the first two are returned.
func ParseSelection(input string, n int) ([]int, error) {
	var positions []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, part)
		}
		if idx < 1 || idx > n {
			return nil, fmt.Errorf("%w: %d is out of range 1..%d", ErrInvalidSelection, idx, n)
		}
		positions = append(positions, idx-1)
	}
	if len(positions) > 2 {
		positions = positions[:2]
	}
	return positions, nil
}

// Resolve turns the user's answer into a Selection. On invalid input it
// returns the defaults together with the parse error.
func Resolve(tasks []string, input string) (Selection, error) {
	defaults := Defaults(tasks)

	positions, err := ParseSelection(input, len(tasks))
	if err != nil {
		return defaults, err
	}

	switch len(positions) {
	case 0:
		return defaults, nil
	case 1:
		return Selection{P1: positions[0], P2: defaultP2(tasks, positions[0])}, nil
	default:
		sel := Selection{P1: positions[0], P2: positions[1]}
		if sel.P2 == sel.P1 {
			sel.P2 = NoTask
		}
		return sel, nil
	}
}
