package postgresengine

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// schemaStatements returns the DDL of the events table and its indexes, safe to run repeatedly.
// The GIN index with jsonb_path_ops serves the containment predicates of the filters.
func schemaStatements(table string) []sqlQueryString {
	quoted := pgx.Identifier{table}.Sanitize()
	typeIndex := pgx.Identifier{table + "_event_type_idx"}.Sanitize()
	payloadIndex := pgx.Identifier{table + "_payload_idx"}.Sanitize()
	occurredAtIndex := pgx.Identifier{table + "_occurred_at_idx"}.Sanitize()

	return []sqlQueryString{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	event_type TEXT NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb
)`, quoted),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (event_type)`, typeIndex, quoted),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (payload jsonb_path_ops)`, payloadIndex, quoted),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (occurred_at)`, occurredAtIndex, quoted),
	}
}
