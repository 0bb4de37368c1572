package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// sqlStateSerializationFailure is raised by postgres when a serializable transaction could not be committed.
const sqlStateSerializationFailure = "40001"

// ErrSerializationFailure is returned by ExecSerializable when the transaction lost against a concurrent one.
var ErrSerializationFailure = errors.New("serializable transaction could not be committed")

// DBAdapter is the part of a database connection the event store needs.
//
// Query reads from a replica if one is configured and the context allows eventual consistency.
// ExecSerializable runs the statement in its own transaction with serializable isolation.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	ExecSerializable(ctx context.Context, query string) (DBResult, error)
}

// DBRows is the cursor over query results.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult is the outcome of an Exec.
type DBResult interface {
	RowsAffected() (int64, error)
}

// classify wraps driver errors which signal a serialization failure with ErrSerializationFailure.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateSerializationFailure {
		return errors.Join(ErrSerializationFailure, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateSerializationFailure {
		return errors.Join(ErrSerializationFailure, err)
	}

	return err
}
