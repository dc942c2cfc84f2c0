package worklog

import "context"

// Repository is the port for persisting workflow log entries. The
// coordinator depends on this abstraction, not on SQLite directly, so the
// implementation can be swapped for Postgres or an in-memory fake in tests.
type Repository interface {
	// Save appends a new entry. The log is append-only; each transition
	// is its own row, never an upsert.
	Save(ctx context.Context, entry *Entry) error
}
