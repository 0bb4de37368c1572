// Package postgresengine provides the PostgreSQL engine of the event store.
//
// All events live in one table. A Query selects by event type and jsonb containment predicates,
// an Append is a single INSERT ... SELECT which only inserts if the highest sequence number
// of the filter's events is still the expected one. The INSERT runs in a serializable transaction,
// a serialization failure is reported as eventstore.ErrConcurrencyConflict.
//
// Supported connections are pgxpool.Pool, sql.DB (lib/pq) and sqlx.DB, each optionally with a read replica
// which serves queries whose context carries eventstore.EventualConsistency.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("ledger_events"),
//		postgresengine.WithLogger(logger),
//		postgresengine.WithMetrics(metrics),
//	)
//	_ = store.CreateSchema(ctx)
package postgresengine
