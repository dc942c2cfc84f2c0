// Package sqlite provides a SQLite-backed implementation of
// worklog.Repository.
//
// WAL mode is enabled on Open so that readers never block writers: the
// workflows write while the observability endpoint may be reading.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/storefront-aggregator/internal/coordinator/worklog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps Docker builds on Alpine straightforward.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only:
// each row is an immutable event in a workflow's lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS work_logs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,

    -- One execution of one workflow. Not UNIQUE: a workflow writes one row
    -- per transition (STARTED, then COMPLETED/FAILED/DISCARDED).
    workflow_id  TEXT NOT NULL,

    -- Workflow name, e.g. "catalog_refresh" or "place_order".
    name         TEXT NOT NULL,

    status       TEXT NOT NULL,

    -- Notification text or fault message for this transition.
    detail       TEXT NOT NULL DEFAULT '',

    -- W3C trace_id / span_id of the active OTel span, '' without tracing.
    trace_id     TEXT NOT NULL DEFAULT '',
    span_id      TEXT NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, the SQLite idiom.
    updated_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_work_logs_workflow_id ON work_logs(workflow_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_work_logs_trace_id ON work_logs(trace_id);
`

// Repository is the SQLite implementation of worklog.Repository.
type Repository struct {
	db *sql.DB
}

var _ worklog.Repository = (*Repository)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
func Open(path string) (*Repository, error) {
	// _pragma query parameters configure connection state for the pure-Go
	// driver. busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new workflow log entry. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *worklog.Entry) error {
	const q = `
		INSERT INTO work_logs
			(workflow_id, name, status, detail, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.WorkflowID,
		entry.Name,
		string(entry.Status),
		entry.Detail,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save work log for %q: %w", entry.WorkflowID, err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. It backs the
// observability endpoint that shows what the coordinator has been doing.
func (r *Repository) Recent(ctx context.Context, limit int) ([]worklog.Entry, error) {
	const q = `
		SELECT workflow_id, name, status, detail, trace_id, span_id, updated_at
		FROM   work_logs
		ORDER  BY id DESC
		LIMIT  ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query recent work logs: %w", err)
	}
	defer rows.Close()

	var entries []worklog.Entry
	for rows.Next() {
		var entry worklog.Entry
		var updatedAt string
		if err := rows.Scan(
			&entry.WorkflowID,
			&entry.Name,
			&entry.Status,
			&entry.Detail,
			&entry.TraceID,
			&entry.SpanID,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan work log: %w", err)
		}
		entry.UpdatedAt, err = parseRFC3339(updatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
