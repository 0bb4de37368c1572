package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

// SpanRecord is a finished span.
type SpanRecord struct {
	Name   string
	Status string
	Attrs  map[string]string
}

// TracingCollectorSpy captures started and finished spans.
type TracingCollectorSpy struct {
	mu       sync.Mutex
	finished []SpanRecord
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	return ctx, &SpanContextSpy{name: name, attrs: maps.Clone(attrs)}
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpanContextSpy)
	if !ok {
		return
	}

	all := maps.Clone(span.attrs)
	if all == nil {
		all = make(map[string]string)
	}
	maps.Copy(all, attrs)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = append(s.finished, SpanRecord{Name: span.name, Status: status, Attrs: all})
}

// FinishedSpans returns a copy of all finished spans.
func (s *TracingCollectorSpy) FinishedSpans() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpanRecord(nil), s.finished...)
}

type SpanContextSpy struct {
	name  string
	attrs map[string]string
}

func (s *SpanContextSpy) SetStatus(_ string) {}

func (s *SpanContextSpy) AddAttribute(key, value string) {
	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[key] = value
}

var (
	_ eventstore.TracingCollector = (*TracingCollectorSpy)(nil)
	_ eventstore.SpanContext      = (*SpanContextSpy)(nil)
)
