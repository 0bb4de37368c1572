package createsquad

import (
	"context"
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

const logMsgInviteesSkipped = "squad invitees without account skipped"

// EventStore defines the interface needed by the CommandHandler for event store operations.
type EventStore interface {
	boundaries.EventQuerier
	boundaries.EventAppender
}

// Result carries the squad after the command, Failure is set when a business rule rejected it.
type Result struct {
	shell.HandlerResult
	Failure         *core.Failure
	Squad           core.SquadState
	SkippedInvitees []core.AccountIDString
}

// CommandHandler runs Query → Unmarshal → Decide → Append with retries on concurrency conflicts.
type CommandHandler struct {
	eventStore   EventStore
	retryOptions []shell.RetryOption
	timeout      time.Duration
	logger       shell.Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions overrides the retry schedule.
func WithRetryOptions(options ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = options
	}
}

// WithTimeout bounds one Handle call including all retries, non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(h *CommandHandler) {
		if timeout > 0 {
			h.timeout = timeout
		}
	}
}

// WithLogger reports skipped invitees at warn level.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

func NewCommandHandler(eventStore EventStore, options ...Option) CommandHandler {
	h := CommandHandler{
		eventStore: eventStore,
		timeout:    shell.DefaultCommandTimeout,
	}

	for _, option := range options {
		option(&h)
	}

	return h
}

// Handle executes the command and reports the squad together with the retry metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if command.SquadID == "" || command.HostID == "" {
		return Result{}, core.ErrMissingIdentifier
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var decision core.DecisionResult
	var loaded boundaries.Loaded

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		loaded, decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	result := Result{
		HandlerResult: shell.ResultFor(decision, retryMetrics, err),
		Failure:       decision.Failure,
	}
	if err != nil {
		return result, err
	}

	if decision.IsRejected() {
		return result, nil
	}

	result.Squad, _ = core.FindSquad(core.ProjectSquads(append(loaded.Events, decision.Events...), command.OccurredAt), command.SquadID)

	if !decision.IsIdempotent() {
		result.SkippedInvitees = MissingInvitees(loaded.Events, command)
		if len(result.SkippedInvitees) > 0 && h.logger != nil {
			h.logger.Warn(logMsgInviteesSkipped, "squad_id", command.SquadID, "account_ids", result.SkippedInvitees)
		}
	}

	return result, nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
) (boundaries.Loaded, core.DecisionResult, error) {

	ctx = eventstore.WithStrongConsistency(ctx)

	loaded, err := boundaries.LoadWithSquadsOf(ctx, h.eventStore, BuildBoundary(command), command.HostID)
	if err != nil {
		return boundaries.Loaded{}, core.DecisionResult{}, err
	}

	decision := Decide(loaded.Events, command)
	if decision.Err != nil {
		return loaded, decision, decision.Err
	}

	if !decision.HasEventsToAppend() {
		return loaded, decision, nil
	}

	return loaded, decision, boundaries.Append(ctx, h.eventStore, loaded, decision.Events)
}
