package recorddailysteps

import (
	"context"
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

// EventStore defines the interface needed by the CommandHandler for event store operations.
type EventStore interface {
	boundaries.EventQuerier
	boundaries.EventAppender
}

// Result reports whether the sample was written, HandlerResult.Idempotent is set when it was skipped.
// LifetimeSteps and Balance are the stored values after the command.
type Result struct {
	shell.HandlerResult
	Written       bool
	Entry         core.StepEntry
	LifetimeSteps int
	Balance       core.Balance
}

// CommandHandler runs Query → Unmarshal → Decide → Append with retries on concurrency conflicts.
type CommandHandler struct {
	eventStore   EventStore
	retryOptions []shell.RetryOption
	timeout      time.Duration
	settings     Settings
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

// WithDailyGoal sets the goal used for commands without their own goal, non-positive values are ignored.
func WithDailyGoal(steps int) Option {
	return func(h *CommandHandler) {
		if steps > 0 {
			h.settings.DailyGoal = steps
		}
	}
}

// WithMinimumStepDelta sets the movement needed to overwrite today's sample, negative values are ignored.
func WithMinimumStepDelta(steps int) Option {
	return func(h *CommandHandler) {
		if steps >= 0 {
			h.settings.MinimumStepDelta = steps
		}
	}
}

func NewCommandHandler(eventStore EventStore, options ...Option) CommandHandler {
	h := CommandHandler{
		eventStore: eventStore,
		timeout:    shell.DefaultCommandTimeout,
		settings:   DefaultSettings(),
	}

	for _, option := range options {
		option(&h)
	}

	return h
}

// Handle executes the command and reports the stored step state together with the retry metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if command.AccountID == "" {
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

	result := Result{HandlerResult: shell.ResultFor(decision, retryMetrics, err)}
	if err != nil {
		return result, err
	}

	account := core.ProjectAccount(command.AccountID, append(loaded.Events, decision.Events...))
	today := core.ToDateKey(command.OccurredAt)

	result.Written = decision.HasEventsToAppend()
	result.LifetimeSteps = account.LifetimeSteps
	result.Balance = account.Balance()
	for _, entry := range account.StepHistory {
		if entry.Date == today {
			result.Entry = entry
		}
	}

	return result, nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
) (boundaries.Loaded, core.DecisionResult, error) {

	ctx = eventstore.WithStrongConsistency(ctx)

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(command.AccountID))
	if err != nil {
		return boundaries.Loaded{}, core.DecisionResult{}, err
	}

	decision := Decide(loaded.Events, command, h.settings)
	if decision.Err != nil {
		return loaded, decision, decision.Err
	}

	if !decision.HasEventsToAppend() {
		return loaded, decision, nil
	}

	return loaded, decision, boundaries.Append(ctx, h.eventStore, loaded, decision.Events)
}
