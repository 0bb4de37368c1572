package postgresengine

import (
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

const (
	dialectPostgres    = "postgres"
	colSequenceNumber  = "sequence_number"
	colEventType       = "event_type"
	colOccurredAt      = "occurred_at"
	colPayload         = "payload"
	colMetadata        = "metadata"
	cteContext         = "context"
	cteVals            = "vals"
	aliasMaxSeq        = "max_seq"
	castText           = "?::text"
	castTimestamp      = "?::timestamp with time zone"
	castJsonb          = "?::jsonb"
	containsPredicate  = "? @> ?::jsonb"
	defaultEventsTable = "events"
)

type sqlQueryString = string

// statementBuilder renders the statements for one events table.
// Statements are rendered non-prepared, goqu escapes all interpolated values.
type statementBuilder struct {
	table string
}

func (b statementBuilder) selectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(b.table).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	where, err := b.whereExpression(filter)
	if err != nil {
		return "", err
	}

	sqlQuery, _, toSQLErr := stmt.Where(where).ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// appendQuery renders one INSERT for all events, guarded by a CTE computing the current max sequence
// number of the filter. If it differs from expectedMaxSequenceNumber, the INSERT selects no rows.
func (b statementBuilder) appendQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	if len(events) == 0 {
		return "", eventstore.ErrNoEventsToAppend
	}

	builder := goqu.Dialect(dialectPostgres)

	where, err := b.whereExpression(filter)
	if err != nil {
		return "", err
	}

	contextStmt := builder.
		From(b.table).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(where)

	valuesStmt := b.valuesRow(builder, events[0])
	for _, event := range events[1:] {
		valuesStmt = valuesStmt.UnionAll(b.valuesRow(builder, event))
	}

	insertStmt := builder.
		Insert(b.table).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, contextStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					qualified(cteVals, colEventType),
					qualified(cteVals, colOccurredAt),
					qualified(cteVals, colPayload),
					qualified(cteVals, colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (b statementBuilder) valuesRow(builder goqu.DialectWrapper, event eventstore.StorableEvent) *goqu.SelectDataset {
	return builder.Select(
		goqu.L(castText, event.EventType).As(colEventType),
		goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
		goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
		goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
	)
}

// whereExpression ORs the filter items. Within an item the event types are ORed and ANDed with the predicates.
func (b statementBuilder) whereExpression(filter eventstore.Filter) (exp.ExpressionList, error) {
	itemExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		eventTypeExpressions := make([]exp.Expression, 0, len(item.EventTypes()))
		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(eventTypeExpressions, goqu.Ex{colEventType: eventType})
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))
		for _, predicate := range item.Predicates() {
			containment, err := jsoniter.ConfigFastest.Marshal(map[string]string{predicate.Key(): predicate.Val()})
			if err != nil {
				return nil, errors.Join(eventstore.ErrBuildingQueryFailed, err)
			}

			predicateExpressions = append(predicateExpressions, goqu.L(containsPredicate, goqu.C(colPayload), string(containment)))
		}

		predicates := goqu.Or(predicateExpressions...)
		if item.AllPredicatesMustMatch() {
			predicates = goqu.And(predicateExpressions...)
		}

		itemExpressions = append(itemExpressions, goqu.And(goqu.Or(eventTypeExpressions...), predicates))
	}

	return goqu.Or(itemExpressions...), nil
}

func qualified(table string, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}
