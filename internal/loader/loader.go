// Package loader supplies the initial task list for a triage session.
//
// A Source returns an ordered list of non-empty task descriptions. The
// built-in sample set is the default; files and SQLite databases can stand in
// for a real task backend without changing anything downstream.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownSource is returned by New for an unrecognized source kind.
var ErrUnknownSource = errors.New("unknown task source")

// Source kinds accepted by New.
const (
	KindSample = "sample"
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Source produces the tasks for one session.
type Source interface {
	Load(ctx context.Context) ([]string, error)
}

// Options configures New.
type Options struct {
	// Kind is one of KindSample, KindFile or KindSQLite.
	Kind string
	// Path is the task file or database path.
	Path string
	// Table, Column and Filter shape the SQLite query.
	Table  string
	Column string
	Filter string
}

// New builds a Source from options. An empty kind selects the sample set.
func New(opts Options) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", KindSample:
		return StaticSource{}, nil
	case KindFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file source: path is required")
		}
		return FileSource{Path: opts.Path}, nil
	case KindSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite source: path is required")
		}
		return SQLiteSource{
			Path:   opts.Path,
			Table:  opts.Table,
			Column: opts.Column,
			Filter: opts.Filter,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, opts.Kind)
	}
}

// Normalize trims every entry and drops the blank ones.
func Normalize(tasks []string) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Announce prints the loaded list so the user can see what will be triaged.
func Announce(w io.Writer, owner string, tasks []string) {
	if owner == "" {
		owner = "Someone"
	}
	fmt.Fprintf(w, "Tasks %s added to your bucket:\n", owner)
	for _, t := range tasks {
		fmt.Fprintf(w, "– %s\n", t)
	}
}
