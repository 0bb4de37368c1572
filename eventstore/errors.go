package eventstore

import "errors"

var (
	// ErrConcurrencyConflict is returned by Append when another writer appended an event matching the same
	// Filter after the expected MaxSequenceNumberUint was read.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no events were appended")

	ErrEmptyEventsTableName  = errors.New("events table name must not be empty")
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrCreatingSchemaFailed        = errors.New("creating schema failed")

	ErrNoEventsToAppend = errors.New("no events to append")
)

// MaxSequenceNumberUint is the highest sequence number of all events matching a Filter at the time of a Query.
// It is the optimistic lock for the "dynamic event stream" described by that Filter.
type MaxSequenceNumberUint = uint
