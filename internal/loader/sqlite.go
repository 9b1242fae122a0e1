package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"
)

// Defaults for SQLiteSource.
const (
	DefaultTable  = "tasks"
	DefaultColumn = "title"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads task descriptions from an existing SQLite database,
// such as a ticket export. The database is opened read-only and never
// written to.
type SQLiteSource struct {
	// Path is the database file. It must already exist.
	Path string
	// Table holds the tasks. Defaults to "tasks".
	Table string
	// Column holds the task description. Defaults to "title".
	Column string
	// Filter is an optional SQL boolean expression, e.g. "status != 'done'".
	Filter string
}

// Query returns the SELECT statement the source will run.
func (s SQLiteSource) Query() (string, error) {
	table := s.Table
	if table == "" {
		table = DefaultTable
	}
	column := s.Column
	if column == "" {
		column = DefaultColumn
	}
	if !identPattern.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	if !identPattern.MatchString(column) {
		return "", fmt.Errorf("invalid column name %q", column)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", column, table)
	if s.Filter != "" {
		query += " WHERE " + s.Filter
	}
	query += " ORDER BY rowid"
	return query, nil
}

// Load implements Source.
func (s SQLiteSource) Load(ctx context.Context) ([]string, error) {
	query, err := s.Query()
	if err != nil {
		return nil, err
	}

	// sql.Open would silently create a missing file.
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("open task database: %w", err)
	}

	conn, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("open task database: %w", err)
	}
	defer conn.Close()

	// One connection so the pragma below applies to the query.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("enable query_only: %w", err)
	}

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []string
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if text.Valid {
			tasks = append(tasks, text.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return Normalize(tasks), nil
}
