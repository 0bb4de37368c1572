package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/postgresengine/internal/adapters"
)

const (
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgCreateSchemaFailed       = "failed to create schema"
	logMsgSchemaCreated            = "schema created"
	logAttrTable                   = "table"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
)

type queryResultRow struct {
	eventType      string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber eventstore.MaxSequenceNumberUint
}

// EventStore is the Postgres engine. Query and Append run against one events table,
// Append is a single conditional INSERT executed in a serializable transaction.
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// NewEventStoreFromPGXPool creates an EventStore on a pgx pool.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromPGXPoolAndReplica routes queries with eventual consistency to the replica pool.
func NewEventStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil || replica == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewEventStoreFromSQLDB creates an EventStore on a database/sql connection, e.g. opened with lib/pq.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLDBAndReplica routes queries with eventual consistency to the replica.
func NewEventStoreFromSQLDBAndReplica(db *sql.DB, replica *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil || replica == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapterWithReplica(db, replica), options...)
}

// NewEventStoreFromSQLX creates an EventStore on a sqlx connection.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

// NewEventStoreFromSQLXAndReplica routes queries with eventual consistency to the replica.
func NewEventStoreFromSQLXAndReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil || replica == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventsTable,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// CreateSchema creates the events table and its indexes if they don't exist yet.
func (es *EventStore) CreateSchema(ctx context.Context) error {
	for _, statement := range schemaStatements(es.eventTableName) {
		start := time.Now()
		_, err := es.db.Exec(ctx, statement)
		es.logSQL(ctx, statement, "create schema", time.Since(start))

		if err != nil {
			es.logError(ctx, logMsgCreateSchemaFailed, err, logAttrTable, es.eventTableName)
			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	es.logOperation(ctx, logMsgSchemaCreated, logAttrTable, es.eventTableName)

	return nil
}

// Query returns the events matching filter in sequence order together with the highest
// sequence number among them, which is the expected value for a subsequent Append.
//
// Queries go to the replica, when one is configured and ctx carries eventual consistency.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, o := es.observe(ctx, operationQuery, spanNameQuery, map[string]string{})

	sqlQuery, buildQueryErr := statementBuilder{table: es.eventTableName}.selectQuery(filter)
	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		o.failed(errorTypeBuildQuery, buildQueryErr)

		return nil, 0, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	es.logSQL(ctx, sqlQuery, operationQuery, time.Since(start))

	if queryErr != nil {
		o.failed(errorTypeDatabaseQuery, queryErr)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	events, maxSequenceNumber, errorType, scanErr := es.scanRows(ctx, rows)
	if scanErr != nil {
		o.failed(errorType, scanErr)
		return nil, 0, scanErr
	}

	es.logOperation(ctx, logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrDurationMS, toMilliseconds(time.Since(start)))

	o.succeeded(len(events), map[string]string{spanAttrMaxSequence: strconv.FormatUint(uint64(maxSequenceNumber), 10)})

	return events, maxSequenceNumber, nil
}

func (es *EventStore) scanRows(ctx context.Context, rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	string,
	error,
) {

	row := queryResultRow{}
	events := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		if err := rows.Scan(&row.eventType, &row.occurredAt, &row.payload, &row.metadata, &row.sequenceNumber); err != nil {
			return nil, 0, errorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, err)
		}

		event, buildErr := eventstore.BuildStorableEvent(row.eventType, row.occurredAt, row.payload, row.metadata)
		if buildErr != nil {
			es.logError(ctx, logMsgBuildStorableEventFailed, buildErr, spanAttrEventType, row.eventType)
			return nil, 0, errorTypeBuildStorableEvent, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildErr)
		}

		events = append(events, event.WithSequenceNumber(row.sequenceNumber))
		maxSequenceNumber = row.sequenceNumber
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, err)
	}

	return events, maxSequenceNumber, "", nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		es.logWarn(ctx, logMsgCloseRowsFailed, err)
	}
}

// Append appends all events atomically, if the highest sequence number of the events matching filter
// still equals expectedMaxSequenceNumber. Otherwise, it returns eventstore.ErrConcurrencyConflict.
//
// The filter must be the one used for the Query the decision was based on.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events ...eventstore.StorableEvent,
) error {

	ctx, o := es.observe(ctx, operationAppend, spanNameAppend, map[string]string{
		spanAttrExpectedSeq: strconv.FormatUint(uint64(expectedMaxSequenceNumber), 10),
	})

	if len(events) == 0 {
		o.failed(errorTypeNoEvents, eventstore.ErrNoEventsToAppend)
		return eventstore.ErrNoEventsToAppend
	}

	sqlQuery, buildQueryErr := statementBuilder{table: es.eventTableName}.appendQuery(events, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildInsertQueryFailed, buildQueryErr)
		o.failed(errorTypeBuildQuery, buildQueryErr)

		return buildQueryErr
	}

	start := time.Now()
	result, execErr := es.db.ExecSerializable(ctx, sqlQuery)
	duration := time.Since(start)
	es.logSQL(ctx, sqlQuery, operationAppend, duration)

	if execErr != nil {
		if errors.Is(execErr, adapters.ErrSerializationFailure) {
			es.logConflict(ctx, len(events), 0, expectedMaxSequenceNumber)
			o.failed(errorTypeConcurrencyConflict, eventstore.ErrConcurrencyConflict)

			return eventstore.ErrConcurrencyConflict
		}

		o.failed(errorTypeDatabaseExec, execErr)

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		o.failed(errorTypeRowsAffected, rowsAffectedErr)
		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(events)) {
		es.logConflict(ctx, len(events), rowsAffected, expectedMaxSequenceNumber)
		o.failed(errorTypeConcurrencyConflict, eventstore.ErrConcurrencyConflict)

		return eventstore.ErrConcurrencyConflict
	}

	es.logOperation(ctx, logMsgEventsAppended,
		logAttrEventCount, len(events),
		logAttrDurationMS, toMilliseconds(duration))

	o.succeeded(len(events), map[string]string{spanAttrRowsAffected: strconv.FormatInt(rowsAffected, 10)})

	return nil
}

func (es *EventStore) logConflict(
	ctx context.Context,
	expectedEvents int,
	rowsAffected int64,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) {

	es.logOperation(ctx, logMsgConcurrencyConflict,
		logAttrExpectedEvents, expectedEvents,
		logAttrRowsAffected, rowsAffected,
		logAttrExpectedSequence, expectedMaxSequenceNumber)
}
