// Package recorddailysteps implements the step history reconciler.
//
// A device reports the steps walked since local midnight. The sample replaces today's entry
// in the 30 day history and the lifetime total is recomputed from the history, it never decreases.
// Samples that moved no more than the minimum delta since the last stored sample of today are skipped
// unless forced, the first sample of a day is always written.
package recorddailysteps
