package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logMsgDecodePayloadFailed = "failed to decode event payload"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
	logAttrEventType          = "event_type"
	logAttrError              = "error"
)

var ErrDecodingPayloadFailed = errors.New("decoding event payload failed")

// storedEvent keeps the top-level string properties of the payload next to the event,
// so predicates are evaluated without decoding the payload again.
type storedEvent struct {
	event   eventstore.StorableEvent
	strings map[string]string
}

// EventStore is an in-process engine with the same Query and conditional Append semantics as the
// postgres engine. Appends are serialized by a mutex, which is what makes the conditional check atomic.
type EventStore struct {
	mu               sync.RWMutex
	events           []storedEvent
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
}

// Option configures an EventStore.
type Option func(*EventStore)

// WithLogger sets a Logger which receives operation summaries at info level.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// WithContextualLogger sets a ContextualLogger, which is preferred over the Logger.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) {
		es.contextualLogger = logger
	}
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{events: make([]storedEvent, 0)}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns all events matching the filter in sequence order and the highest sequence number among them.
// The consistency level of ctx is ignored, there is only one copy of the data.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	start := time.Now()
	result := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if matches(filter, stored) {
			result = append(result, stored.event)
			maxSequenceNumber = stored.event.SequenceNumber
		}
	}

	es.logInfo(ctx, logMsgQueryCompleted, logAttrEventCount, len(result), "duration_ms", time.Since(start).Milliseconds())

	return result, maxSequenceNumber, nil
}

// Append appends all events atomically if the highest sequence number of events matching filter
// still equals expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events ...eventstore.StorableEvent,
) error {

	if len(events) == 0 {
		return eventstore.ErrNoEventsToAppend
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	toStore := make([]storedEvent, 0, len(events))
	for _, event := range events {
		strings, err := topLevelStrings(event.PayloadJSON)
		if err != nil {
			es.logError(ctx, logMsgDecodePayloadFailed, logAttrError, err.Error(), logAttrEventType, event.EventType)
			return errors.Join(eventstore.ErrAppendingEventFailed, ErrDecodingPayloadFailed, err)
		}

		toStore = append(toStore, storedEvent{event: event, strings: strings})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actual := es.maxSequenceNumberMatching(filter)
	if actual != expectedMaxSequenceNumber {
		es.logInfo(ctx, logMsgConcurrencyConflict, logAttrExpectedSequence, expectedMaxSequenceNumber, logAttrActualSequence, actual)
		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(es.events))
	for i := range toStore {
		next++
		toStore[i].event = toStore[i].event.WithSequenceNumber(next)
	}

	es.events = append(es.events, toStore...)
	es.logInfo(ctx, logMsgEventsAppended, logAttrEventCount, len(toStore))

	return nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// Reset removes all events.
func (es *EventStore) Reset() {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.events = es.events[:0]
}

func (es *EventStore) maxSequenceNumberMatching(filter eventstore.Filter) eventstore.MaxSequenceNumberUint {
	for i := len(es.events) - 1; i >= 0; i-- {
		if matches(filter, es.events[i]) {
			return es.events[i].event.SequenceNumber
		}
	}

	return 0
}

func matches(filter eventstore.Filter, stored storedEvent) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, item := range filter.Items() {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	for _, predicate := range item.Predicates() {
		val, ok := stored.strings[predicate.Key()]
		hit := ok && val == predicate.Val()

		if hit && !item.AllPredicatesMustMatch() {
			return true
		}

		if !hit && item.AllPredicatesMustMatch() {
			return false
		}
	}

	return item.AllPredicatesMustMatch()
}

// topLevelStrings mirrors the jsonb containment check `payload @> '{"Key": "Val"}'`,
// which only matches top-level string values.
func topLevelStrings(payloadJSON []byte) (map[string]string, error) {
	decoded := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &decoded); err != nil {
		return nil, err
	}

	strings := make(map[string]string, len(decoded))
	for key, val := range decoded {
		if s, ok := val.(string); ok {
			strings[key] = s
		}
	}

	return strings, nil
}

func (es *EventStore) logInfo(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

func (es *EventStore) logError(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Error(msg, args...)
	}
}
