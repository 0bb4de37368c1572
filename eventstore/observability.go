package eventstore

import (
	"context"
	"time"
)

// Logger is the interface engines use for SQL query logging, operation summaries, warnings and errors.
//
// Engines log the rendered SQL at debug level, a summary of every query and append at info level,
// problems while releasing database resources at warn level and failed operations at error level.
// *slog.Logger satisfies this interface, so the ledger daemon passes its structured logger unchanged.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger is the context-aware variant of Logger.
//
// It follows the same dependency-free pattern as MetricsCollector and TracingCollector. An
// implementation can read the active span from the context and attach its trace and span IDs
// to every record, which is what the OpenTelemetry adapters in the oteladapters package do.
// When an engine is configured with both loggers, the ContextualLogger receives the records.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector is the interface for collecting event store and command handler metrics.
//
// Metric names are passed in full (e.g. "eventstore_append_duration_seconds"), labels are plain
// string maps. See the oteladapters package for an OpenTelemetry implementation.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
//
// Implementations can use the context to correlate measurements with the active trace.
// This interface is optional: engines and handler wrappers call the context-aware methods when
// the collector implements them and fall back to the MetricsCollector methods otherwise.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be updated with a status and attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector is the interface for collecting distributed tracing information.
//
// StartSpan returns a derived context carrying the new span, which callers pass on to nested
// operations, e.g. from RedeemOffer's handler span into the eventstore.query and eventstore.append spans.
// FinishSpan ends the span with the outcome status, e.g. "success", "rejected" or "error".
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}
