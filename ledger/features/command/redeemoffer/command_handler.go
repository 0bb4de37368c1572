package redeemoffer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

// maxCodeAttempts bounds the regeneration of colliding redemption codes per attempt.
const maxCodeAttempts = 8

// ErrNoUniqueRedemptionCode is returned when every generated code was already taken.
var ErrNoUniqueRedemptionCode = errors.New("could not mint a unique redemption code")

// EventStore defines the interface needed by the CommandHandler for event store operations.
type EventStore interface {
	boundaries.EventQuerier
	boundaries.EventAppender
}

// Result carries the redemption, Failure is set when a business rule rejected the command.
// A replayed operation returns the original redemption.
type Result struct {
	shell.HandlerResult
	Failure        *core.Failure
	RedemptionID   core.RedemptionIDString
	RedemptionCode string
	ExpiresAt      time.Time
	Balance        core.Balance
}

// CommandHandler runs Query → Unmarshal → Decide → Append with retries on concurrency conflicts.
type CommandHandler struct {
	eventStore   EventStore
	retryOptions []shell.RetryOption
	timeout      time.Duration
	generateCode core.RedemptionCodeGenerator
	validity     time.Duration
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

// WithCodeGenerator replaces core.GenerateRedemptionCode.
func WithCodeGenerator(generator core.RedemptionCodeGenerator) Option {
	return func(h *CommandHandler) {
		if generator != nil {
			h.generateCode = generator
		}
	}
}

// WithRedemptionValidity makes new redemptions expire after validity, zero means they never expire.
func WithRedemptionValidity(validity time.Duration) Option {
	return func(h *CommandHandler) {
		if validity >= 0 {
			h.validity = validity
		}
	}
}

func NewCommandHandler(eventStore EventStore, options ...Option) CommandHandler {
	h := CommandHandler{
		eventStore:   eventStore,
		timeout:      shell.DefaultCommandTimeout,
		generateCode: core.GenerateRedemptionCode,
	}

	for _, option := range options {
		option(&h)
	}

	return h
}

// Handle executes the command and reports the redemption together with the retry metadata.
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

	result := Result{
		HandlerResult: shell.ResultFor(decision, retryMetrics, err),
		Failure:       decision.Failure,
	}
	if err != nil {
		return result, err
	}

	account := core.ProjectAccount(command.AccountID, append(loaded.Events, decision.Events...))
	result.Balance = account.Balance()

	if redemption, found := redemptionOf(account, command, decision); found && decision.Failure == nil {
		result.RedemptionID = redemption.ID
		result.RedemptionCode = redemption.Code
		result.ExpiresAt = redemption.ExpiresAt
	}

	return result, nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
) (boundaries.Loaded, core.DecisionResult, error) {

	ctx = eventstore.WithStrongConsistency(ctx)

	loaded, mint, err := h.loadWithUniqueCode(ctx, command)
	if err != nil {
		return boundaries.Loaded{}, core.DecisionResult{}, err
	}

	decision := Decide(loaded.Events, command, mint)
	if decision.Err != nil {
		return loaded, decision, decision.Err
	}

	if !decision.HasEventsToAppend() {
		return loaded, decision, nil
	}

	return loaded, decision, boundaries.Append(ctx, h.eventStore, loaded, decision.Events)
}

// loadWithUniqueCode regenerates the code until no redemption in the loaded boundary carries it.
func (h CommandHandler) loadWithUniqueCode(ctx context.Context, command Command) (boundaries.Loaded, Mint, error) {
	mint := Mint{RedemptionID: uuid.NewString()}
	if h.validity > 0 {
		mint.ExpiresAt = command.OccurredAt.Add(h.validity)
	}

	for range maxCodeAttempts {
		mint.Code = h.generateCode()

		loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(command.AccountID, mint.Code))
		if err != nil {
			return boundaries.Loaded{}, Mint{}, err
		}

		if !core.IsRedemptionCodeTaken(mint.Code, loaded.Events) {
			return loaded, mint, nil
		}
	}

	return boundaries.Loaded{}, Mint{}, ErrNoUniqueRedemptionCode
}

// redemptionOf returns the redemption just created or, for a replay, the one created by the operation.
func redemptionOf(account core.AccountState, command Command, decision core.DecisionResult) (core.Redemption, bool) {
	for _, event := range decision.Events {
		redeemed, ok := event.(core.OfferRedeemed)
		if !ok {
			continue
		}

		for _, redemption := range account.Redemptions {
			if redemption.ID == redeemed.RedemptionID {
				return redemption, true
			}
		}
	}

	return account.RedemptionByOperation(command.OperationID)
}
