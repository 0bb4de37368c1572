package eventstore

import "context"

// ConsistencyLevel selects the database an engine with a read replica uses for Query.
// Engines without a replica ignore it and always read from their single source.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary database, so a Query sees every event appended before it.
	// Command handlers of the ledger use it for their read-decide-append cycle: the maxSequenceNumber
	// they hand to Append must come from the primary, otherwise a redemption could be decided on a
	// wallet balance that a concurrent debit has already spent.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database, which may lag behind the primary.
	// Query handlers such as the wallet balance or the league standings use it, a stale read
	// shows a slightly older state and never leads to an append.
	EventualConsistency
)

// contextKey is unexported, so no other package can collide with the keys of this package.
type contextKey string

// ConsistencyLevelKey is the context key under which the ConsistencyLevel is stored.
const ConsistencyLevelKey contextKey = "eventstore.consistency_level"

// WithStrongConsistency returns a context that makes the following Query read from the primary database.
//
// Command handlers wrap their context with it before loading the events of their consistency boundary.
//
// Example usage:
//
//	ctx = eventstore.WithStrongConsistency(ctx)
//	events, maxSeq, err := eventStore.Query(ctx, filter)
//	// decide on events, then
//	err = eventStore.Append(ctx, filter, maxSeq, newEvents...)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that lets the following Query read from a replica database.
//
// Query handlers wrap their context with it when a slightly stale projection is acceptable.
//
// Example usage:
//
//	ctx = eventstore.WithEventualConsistency(ctx)
//	events, maxSeq, err := eventStore.Query(ctx, filter)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// A context without a level yields StrongConsistency, so an unmarked Query never reads from a replica.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String renders the level for log and span attributes.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
