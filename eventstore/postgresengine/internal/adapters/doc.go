// Package adapters hides the differences between pgxpool.Pool, sql.DB and sqlx.DB
// behind the DBAdapter interface used by the postgres event store engine.
//
// All adapters route queries to an optional replica when the context asks for eventual consistency,
// and run appends in a serializable transaction, reporting lost races as ErrSerializationFailure.
package adapters
