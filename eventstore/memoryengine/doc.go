// Package memoryengine provides an in-process event store engine.
//
// It evaluates eventstore.Filter(s) exactly like the postgres engine does: event types are ORed,
// predicates compare top-level string properties of the JSON payload and the items of a Filter are ORed.
// Append is conditional on the highest sequence number of the events matching the Filter.
//
// The engine is meant for tests and for running the daemon without a database.
// All data is lost when the process stops.
package memoryengine
