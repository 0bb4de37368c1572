package shell

import (
	"context"
)

// Command is implemented by all command types, CommandType labels logs, metrics and spans.
type Command interface {
	CommandType() string
}

// Query is implemented by all query types.
type Query interface {
	QueryType() string
}

// CommandResult is implemented by feature results embedding HandlerResult.
type CommandResult interface {
	Execution() HandlerResult
}

// CommandHandler processes a command with pure business logic, retry included.
// Business rule violations are reported in R, not as error.
type CommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// QueryHandler processes a query without side effects.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
