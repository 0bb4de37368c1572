package postgresengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

func Test_SelectQuery_RendersFilterAsContainmentPredicates(t *testing.T) {
	// arrange
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("AccountOpened", "OfferRedeemed").
		AndAnyPredicateOf(eventstore.P("AccountID", "a-1")).
		Finalize()

	// act
	sqlQuery, err := statementBuilder{table: defaultEventsTable}.selectQuery(filter)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "events"`)
	assert.Contains(t, sqlQuery, `"event_type" = 'AccountOpened'`)
	assert.Contains(t, sqlQuery, `"event_type" = 'OfferRedeemed'`)
	assert.Contains(t, sqlQuery, `"payload" @> '{"AccountID":"a-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
}

func Test_SelectQuery_EscapesPredicateValues(t *testing.T) {
	// arrange
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("AccountID", "a'; DROP TABLE events; --")).
		Finalize()

	// act
	sqlQuery, err := statementBuilder{table: defaultEventsTable}.selectQuery(filter)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `a''; DROP TABLE events; --`)
}

func Test_SelectQuery_EmptyFilterHasNoWhereClause(t *testing.T) {
	// act
	sqlQuery, err := statementBuilder{table: "ledger_events"}.selectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "ledger_events"`)
	assert.NotContains(t, sqlQuery, "WHERE")
}

func Test_AppendQuery_IsGuardedByExpectedMaxSequenceNumber(t *testing.T) {
	// arrange
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("SquadID", "s-1")).
		Finalize()

	first, err := eventstore.BuildStorableEventWithEmptyMetadata("SquadRewardRedeemed", time.Now(), []byte(`{"SquadID":"s-1"}`))
	require.NoError(t, err)
	second, err := eventstore.BuildStorableEventWithEmptyMetadata("SquadRewardDebited", time.Now(), []byte(`{"SquadID":"s-1"}`))
	require.NoError(t, err)

	// act
	sqlQuery, err := statementBuilder{table: defaultEventsTable}.appendQuery(eventstore.StorableEvents{first, second}, filter, 42)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "events"`)
	assert.Contains(t, sqlQuery, `WITH context AS`)
	assert.Contains(t, sqlQuery, `UNION ALL`)
	assert.Contains(t, sqlQuery, `COALESCE("max_seq", 0) = 42`)
	assert.Contains(t, sqlQuery, `'SquadRewardDebited'::text`)
}

func Test_AppendQuery_RequiresEvents(t *testing.T) {
	// act
	_, err := statementBuilder{table: defaultEventsTable}.appendQuery(nil, eventstore.BuildEventFilter().MatchingAnyEvent(), 0)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrNoEventsToAppend)
}

func Test_SchemaStatements_QuoteTheTableName(t *testing.T) {
	// act
	statements := schemaStatements("ledger_events")

	// assert
	require.Len(t, statements, 4)
	assert.Contains(t, statements[0], `CREATE TABLE IF NOT EXISTS "ledger_events"`)
	assert.Contains(t, statements[2], `USING GIN (payload jsonb_path_ops)`)
}
