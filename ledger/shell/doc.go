// Package shell holds the imperative shell shared by all ledger features:
// mapping between domain events and storable events, event metadata, the retry loop for
// optimistic concurrency conflicts, handler results, and observability helpers used by the
// observable wrappers.
package shell
