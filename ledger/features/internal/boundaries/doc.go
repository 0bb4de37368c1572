// Package boundaries builds the event filters which form the consistency boundaries of the features.
//
// A boundary is a union of filter items. The filter used for the query is also used for the
// conditional append, so every event matching one of the items that was appended in between
// makes the append fail with eventstore.ErrConcurrencyConflict.
package boundaries
