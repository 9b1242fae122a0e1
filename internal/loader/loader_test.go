package loader

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestStaticSource_Sample(t *testing.T) {
	got, err := StaticSource{}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []string{
		"Resolve client escalation on Firefighter",
		"Fix Sales360 development bug",
		"Review PR #23",
		"provision new cluster in production",
		"Close BI Migration activity",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sample tasks mismatch (-want +got):\n%s", diff)
	}

	// Callers must not be able to mutate the shared sample.
	got[0] = "changed"
	if SampleTasks()[0] == "changed" {
		t.Error("SampleTasks returned shared backing array")
	}
}

func TestStaticSource_Custom(t *testing.T) {
	src := StaticSource{Tasks: []string{" a ", "", "b", "   "}}
	got, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got, err = StaticSource{Tasks: []string{}}.Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Errorf("empty source: got (%q, %v)", got, err)
	}
}

func TestStaticSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (StaticSource{}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFileSource(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "yaml mapping",
			file:    "tasks.yaml",
			content: "tasks:\n  - Fix prod outage\n  - \"Review PR #9\"\n  - ''\n",
			want:    []string{"Fix prod outage", "Review PR #9"},
		},
		{
			name:    "yaml bare list",
			file:    "tasks.yml",
			content: "- one\n- two\n",
			want:    []string{"one", "two"},
		},
		{
			name:    "empty yaml",
			file:    "empty.yaml",
			content: "\n",
			want:    []string{},
		},
		{
			name:    "yaml scalar is rejected",
			file:    "bad.yaml",
			content: "just a string\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "broken.yaml",
			content: "tasks: [unterminated\n",
			wantErr: true,
		},
		{
			name:    "plain text with comments",
			file:    "tasks.txt",
			content: "# today\nCall client\n\n  Review SLA report  \n#later\n",
			want:    []string{"Call client", "Review SLA report"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write file: %v", err)
			}

			got, err := FileSource{Path: path}.Load(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tasks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.yaml")}.Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func createTaskDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.db")

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	stmts := []string{
		`CREATE TABLE tasks (title TEXT, status TEXT)`,
		`INSERT INTO tasks (title, status) VALUES ('Resolve client escalation', 'open')`,
		`INSERT INTO tasks (title, status) VALUES ('Old review', 'done')`,
		`INSERT INTO tasks (title, status) VALUES (NULL, 'open')`,
		`INSERT INTO tasks (title, status) VALUES ('  Fix bug  ', 'open')`,
		`CREATE TABLE tickets (summary TEXT)`,
		`INSERT INTO tickets (summary) VALUES ('From tickets')`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestSQLiteSource(t *testing.T) {
	path := createTaskDB(t)

	got, err := SQLiteSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []string{"Resolve client escalation", "Old review", "Fix bug"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}

	got, err = SQLiteSource{Path: path, Filter: "status != 'done'"}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load with filter returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"Resolve client escalation", "Fix bug"}, got); diff != "" {
		t.Errorf("filtered tasks mismatch (-want +got):\n%s", diff)
	}

	got, err = SQLiteSource{Path: path, Table: "tickets", Column: "summary"}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load from tickets returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"From tickets"}, got); diff != "" {
		t.Errorf("tickets mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteSource_ReadOnly(t *testing.T) {
	path := createTaskDB(t)

	_, err := SQLiteSource{Path: path, Filter: "1=1; DELETE FROM tasks"}.Load(context.Background())
	if err == nil {
		// Some drivers ignore trailing statements; make sure nothing was deleted either way.
		t.Log("driver ignored trailing statement")
	}

	got, err := SQLiteSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 tasks to survive, got %d", len(got))
	}
}

func TestSQLiteSource_Errors(t *testing.T) {
	if _, err := (SQLiteSource{Path: filepath.Join(t.TempDir(), "missing.db")}).Load(context.Background()); err == nil {
		t.Error("expected error for missing database")
	}

	if _, err := (SQLiteSource{Path: "x.db", Table: "tasks; DROP TABLE x"}).Query(); err == nil {
		t.Error("expected error for invalid table name")
	}
	if _, err := (SQLiteSource{Path: "x.db", Column: "1bad"}).Query(); err == nil {
		t.Error("expected error for invalid column name")
	}

	q, err := SQLiteSource{}.Query()
	if err != nil || q != "SELECT title FROM tasks ORDER BY rowid" {
		t.Errorf("default query = (%q, %v)", q, err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    Source
		wantErr bool
	}{
		{"empty kind is sample", Options{}, StaticSource{}, false},
		{"sample", Options{Kind: "Sample"}, StaticSource{}, false},
		{"file", Options{Kind: "file", Path: "t.yaml"}, FileSource{Path: "t.yaml"}, false},
		{"file without path", Options{Kind: "file"}, nil, true},
		{"sqlite", Options{Kind: "sqlite", Path: "t.db", Table: "tickets"}, SQLiteSource{Path: "t.db", Table: "tickets"}, false},
		{"sqlite without path", Options{Kind: "sqlite"}, nil, true},
		{"unknown", Options{Kind: "jira"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("source mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := New(Options{Kind: "jira"}); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestAnnounce(t *testing.T) {
	var buf bytes.Buffer
	Announce(&buf, SampleOwner, []string{"a", "b"})

	want := "Tasks Priyanka added to your bucket:\n– a\n– b\n"
	if buf.String() != want {
		t.Errorf("Announce = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	Announce(&buf, "", nil)
	if buf.String() != "Tasks Someone added to your bucket:\n" {
		t.Errorf("Announce with no owner = %q", buf.String())
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	if err := os.WriteFile(path, []byte("one\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() {
			calls.Add(1)
			changed <- struct{}{}
		})
	}()

	// Writes to unrelated files must not trigger the callback.
	deadline := time.After(5 * time.Second)
wait:
	for {
		if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
			t.Fatalf("write other: %v", err)
		}
		if err := os.WriteFile(path, []byte("one\ntwo\n"), 0644); err != nil {
			t.Fatalf("rewrite file: %v", err)
		}
		select {
		case <-changed:
			break wait
		case <-time.After(300 * time.Millisecond):
		case <-deadline:
			t.Fatal("watch callback was not called")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	if calls.Load() == 0 {
		t.Error("expected at least one callback")
	}
}
