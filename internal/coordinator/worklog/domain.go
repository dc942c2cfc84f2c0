// Package worklog defines the domain types for the workflow audit log.
//
// The log is a durable trail of every lifecycle transition a user-triggered
// workflow goes through. Its purpose is observability: each row carries the
// trace_id of the OpenTelemetry span that was active when it was written,
// so a failed checkout can be followed from the log row straight into the
// distributed trace.
package worklog

import "time"

// Status represents the lifecycle state of one workflow execution.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"

	// StatusDiscarded marks a workflow whose response arrived after a
	// later-issued request for the same resource had already been applied.
	StatusDiscarded Status = "DISCARDED"
)

// Entry is a single row in the work_logs table: a point-in-time snapshot
// of one workflow execution.
type Entry struct {
	// WorkflowID uniquely identifies one execution. A fresh ID is minted
	// per user action, so two clicks on the same button are two rows.
	WorkflowID string

	// Name is the workflow that ran, e.g. "catalog_refresh".
	Name string

	// Status is the lifecycle state at the time this row was written.
	Status Status

	// Detail is the human-readable outcome: the notification text on
	// success, the fault message on failure.
	Detail string

	// TraceID is the W3C trace ID of the active OpenTelemetry span, empty
	// when tracing is not configured.
	TraceID string

	// SpanID pinpoints the span within the trace.
	SpanID string

	// UpdatedAt is the wall-clock time of this entry.
	UpdatedAt time.Time
}
