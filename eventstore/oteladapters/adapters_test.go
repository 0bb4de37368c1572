package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/log/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/oteladapters"
)

func Test_SlogBridgeLoggerWithHandler_LogsAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "account_id", "a-1")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message", "steps", 42)

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"account_id":"a-1"`)
	assert.Contains(t, output, `"steps":42`)
}

type recordingExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *recordingExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}

	return nil
}

func (e *recordingExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingExporter) ForceFlush(context.Context) error { return nil }

func (e *recordingExporter) Records() []sdklog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]sdklog.Record(nil), e.records...)
}

func Test_SlogBridgeLogger_CorrelatesRecordsWithTheSpan(t *testing.T) {
	// arrange
	exporter := &recordingExporter{}
	global.SetLoggerProvider(sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter))))
	t.Cleanup(func() { global.SetLoggerProvider(noop.NewLoggerProvider()) })

	tracerProvider := sdktrace.NewTracerProvider()
	ctx, span := tracerProvider.Tracer("test").Start(context.Background(), "RedeemOffer")
	logger := oteladapters.NewSlogBridgeLogger("test")

	// act
	logger.WarnContext(ctx, "redemption rejected", "account_id", "a-1")
	span.End()

	// assert
	records := exporter.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "redemption rejected", records[0].Body().AsString())
	assert.Equal(t, log.SeverityWarn, records[0].Severity())
	assert.Equal(t, span.SpanContext().TraceID(), records[0].TraceID())
	assert.Equal(t, span.SpanContext().SpanID(), records[0].SpanID())
}

func Test_OTelLogger_EmitsAttributes(t *testing.T) {
	// arrange
	exporter := &recordingExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	logger := oteladapters.NewOTelLogger(provider.Logger("test"))

	// act
	logger.InfoContext(context.Background(), "events appended", "event_count", 2)

	// assert
	records := exporter.Records()
	require.Len(t, records, 1)
	assert.Equal(t, log.SeverityInfo, records[0].Severity())

	attributes := map[string]string{}
	records[0].WalkAttributes(func(kv log.KeyValue) bool {
		attributes[kv.Key] = kv.Value.AsString()
		return true
	})
	assert.Equal(t, map[string]string{"event_count": "2"}, attributes)
}

func Test_OTelLogger_HandlesOddArguments(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "message", "key1", "value1", "key2")
		logger.ErrorContext(context.Background(), "message", 42, "not a key")
	})
}

func Test_MetricsCollector_RecordsAllInstrumentKinds(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	collector := oteladapters.NewMetricsCollector(provider.Meter("test"))
	labels := map[string]string{"command_type": "RedeemOffer", "status": "success"}

	// act
	collector.RecordDuration("commandhandler_handle_duration_seconds", 150*time.Millisecond, labels)
	collector.IncrementCounter("commandhandler_handle_calls_total", labels)
	collector.IncrementCounterContext(context.Background(), "commandhandler_handle_calls_total", labels)
	collector.RecordValue("eventstore_events_queried_total", 7, labels)

	// assert
	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	histogram, ok := findMetric(resourceMetrics, "commandhandler_handle_duration_seconds").(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("command_type", "RedeemOffer"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))

	counter, ok := findMetric(resourceMetrics, "commandhandler_handle_calls_total").(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(2), counter.DataPoints[0].Value)

	gauge, ok := findMetric(resourceMetrics, "eventstore_events_queried_total").(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_TracingCollector_FinishesSpansWithStatus(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error},
		{status: "canceled", expectedCode: codes.Error},
		{status: "timeout", expectedCode: codes.Error},
		{status: "idempotent", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter := tracetest.NewInMemoryExporter()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
			collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "commandhandler.handle", map[string]string{"command_type": "RedeemOffer"})
			spanCtx.AddAttribute("account_id", "a-1")
			collector.FinishSpan(spanCtx, tc.status, map[string]string{"duration_ms": "1.00"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, "commandhandler.handle", spans[0].Name)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Contains(t, spans[0].Attributes, attribute.String("command_type", "RedeemOffer"))
			assert.Contains(t, spans[0].Attributes, attribute.String("account_id", "a-1"))
			assert.Contains(t, spans[0].Attributes, attribute.String("duration_ms", "1.00"))
		})
	}
}

func findMetric(resourceMetrics metricdata.ResourceMetrics, name string) any {
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}

	return nil
}
