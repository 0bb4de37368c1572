package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

type DurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

type CounterRecord struct {
	Metric string
	Labels map[string]string
}

type ValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// MetricsCollectorSpy captures metrics calls, labels are copied on capture.
type MetricsCollectorSpy struct {
	mu        sync.Mutex
	durations []DurationRecord
	counters  []CounterRecord
	values    []ValueRecord
}

func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, DurationRecord{Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, CounterRecord{Metric: metric, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, ValueRecord{Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// Counters returns the captured increments of metric.
func (s *MetricsCollectorSpy) Counters(metric string) []CounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []CounterRecord
	for _, r := range s.counters {
		if r.Metric == metric {
			records = append(records, r)
		}
	}

	return records
}

// Durations returns the captured durations of metric.
func (s *MetricsCollectorSpy) Durations(metric string) []DurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []DurationRecord
	for _, r := range s.durations {
		if r.Metric == metric {
			records = append(records, r)
		}
	}

	return records
}

// Values returns the captured values of metric.
func (s *MetricsCollectorSpy) Values(metric string) []ValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []ValueRecord
	for _, r := range s.values {
		if r.Metric == metric {
			records = append(records, r)
		}
	}

	return records
}

var _ eventstore.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
