package loader

import "context"

// SampleOwner is the person credited with the sample tasks.
const SampleOwner = "Priyanka"

// sampleTasks is the illustrative set used when no task source is configured.
var sampleTasks = []string{
	"Resolve client escalation on Firefighter",
	"Fix Sales360 development bug",
	"Review PR #23",
	"provision new cluster in production",
	"Close BI Migration activity",
}

// SampleTasks returns a copy of the built-in sample tasks.
func SampleTasks() []string {
	return append([]string(nil), sampleTasks...)
}

// StaticSource returns a fixed task list. A zero StaticSource returns the
// sample tasks.
type StaticSource struct {
	Tasks []string
}

// Load implements Source.
func (s StaticSource) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Tasks == nil {
		return SampleTasks(), nil
	}
	return Normalize(s.Tasks), nil
}
