// Package eventstore holds the engine-agnostic building blocks of an event store
// with dynamic consistency boundaries: filters, storable events, errors,
// consistency levels and the dependency-free observability interfaces.
//
// A Filter selects events by type and by top-level string payload properties.
// The same Filter is used to Query the events a decision is based on and to
// Append the resulting events, which only succeeds if no other event matching
// the Filter was appended in between:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.AccountOpenedEventType, core.OfferRedeemedEventType).
//		AndAnyPredicateOf(eventstore.P("AccountID", accountID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
//		// query again and retry
//	}
//
// Engines live in the sub packages memoryengine and postgresengine.
package eventstore
