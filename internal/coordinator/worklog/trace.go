package worklog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and returns
// its trace_id and span_id as hex strings. When the context carries no
// active span (e.g. in unit tests) both fields are empty and the caller
// should proceed regardless.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry with the trace info extracted from ctx and the
// timestamp set to now.
func NewEntry(ctx context.Context, workflowID, name string, status Status, detail string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		WorkflowID: workflowID,
		Name:       name,
		Status:     status,
		Detail:     detail,
		TraceID:    ti.TraceID,
		SpanID:     ti.SpanID,
		UpdatedAt:  time.Now().UTC(),
	}
}
