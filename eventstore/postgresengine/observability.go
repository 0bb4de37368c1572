package postgresengine

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried_total"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"

	labelOperation = "operation"
	labelStatus    = "status"
	labelErrorType = "error_type"

	spanAttrEventCount   = "event_count"
	spanAttrEventType    = "event_type"
	spanAttrExpectedSeq  = "expected_sequence"
	spanAttrMaxSequence  = "max_sequence"
	spanAttrRowsAffected = "rows_affected"
	spanAttrDurationMS   = "duration_ms"

	errorTypeBuildQuery          = "build_query"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeRowScan             = "row_scan"
	errorTypeBuildStorableEvent  = "build_storable_event"
	errorTypeDatabaseExec        = "database_exec"
	errorTypeRowsAffected        = "rows_affected"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeNoEvents            = "no_events"

	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "eventstore operation: "
	logMsgQueryCompleted      = "query completed"
	logMsgEventsAppended      = "events appended"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgOperationFailed     = "eventstore operation failed"

	logAttrError            = "error"
	logAttrErrorType        = "error_type"
	logAttrQuery            = "query"
	logAttrEventCount       = "event_count"
	logAttrDurationMS       = "duration_ms"
	logAttrExpectedEvents   = "expected_events"
	logAttrRowsAffected     = "rows_affected"
	logAttrExpectedSequence = "expected_sequence"
	logAttrOperation        = "operation"
)

// observation carries the instrumentation of one Query or Append call.
type observation struct {
	es        *EventStore
	ctx       context.Context
	operation string
	span      eventstore.SpanContext
	start     time.Time
}

func (es *EventStore) observe(ctx context.Context, operation string, spanName string, attrs map[string]string) (context.Context, *observation) {
	o := &observation{es: es, ctx: ctx, operation: operation, start: time.Now()}

	if es.tracingCollector != nil {
		attrs[labelOperation] = operation
		o.ctx, o.span = es.tracingCollector.StartSpan(ctx, spanName, attrs)
	}

	return o.ctx, o
}

func (o *observation) succeeded(eventCount int, attrs map[string]string) {
	duration := time.Since(o.start)

	metricEvents := metricEventsQueried
	metricDuration := metricQueryDuration
	if o.operation == operationAppend {
		metricEvents = metricEventsAppended
		metricDuration = metricAppendDuration
	}

	o.es.recordDuration(o.ctx, metricDuration, duration, o.labels(statusSuccess))
	o.es.recordValue(o.ctx, metricEvents, float64(eventCount), o.labels(statusSuccess))

	if o.span != nil {
		attrs[spanAttrEventCount] = strconv.Itoa(eventCount)
		attrs[spanAttrDurationMS] = formatMS(duration)
		o.es.tracingCollector.FinishSpan(o.span, statusSuccess, attrs)
	}
}

func (o *observation) failed(errorType string, err error) {
	duration := time.Since(o.start)

	if errorType == errorTypeConcurrencyConflict {
		o.es.incrementCounter(o.ctx, metricConcurrencyConflicts, map[string]string{labelOperation: o.operation})
	} else {
		labels := o.labels(statusError)
		labels[labelErrorType] = errorType
		o.es.incrementCounter(o.ctx, metricDatabaseErrors, labels)
		o.es.logError(o.ctx, logMsgOperationFailed, err, logAttrOperation, o.operation, logAttrErrorType, errorType)
	}

	o.es.recordDuration(o.ctx, metricDuration(o.operation), duration, o.labels(statusError))

	if o.span != nil {
		o.es.tracingCollector.FinishSpan(o.span, statusError, map[string]string{
			labelErrorType:     errorType,
			spanAttrDurationMS: formatMS(duration),
		})
	}
}

func (o *observation) labels(status string) map[string]string {
	return map[string]string{labelOperation: o.operation, labelStatus: status}
}

func metricDuration(operation string) string {
	if operation == operationAppend {
		return metricAppendDuration
	}

	return metricQueryDuration
}

func (es *EventStore) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if collector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, duration, labels)
}

func (es *EventStore) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if collector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es *EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if collector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

// logSQL logs at debug level, the statements contain payload data.
func (es *EventStore) logSQL(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if es.contextualLogger != nil {
		es.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

func (es *EventStore) logOperation(ctx context.Context, action string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}
}

func (es *EventStore) logWarn(ctx context.Context, msg string, err error) {
	if es.contextualLogger != nil {
		es.contextualLogger.WarnContext(ctx, msg, logAttrError, err.Error())
		return
	}

	if es.logger != nil {
		es.logger.Warn(msg, logAttrError, err.Error())
	}
}

func (es *EventStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if es.logger != nil {
		es.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds rounds to 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMS(d time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(d), 'f', 2, 64)
}
