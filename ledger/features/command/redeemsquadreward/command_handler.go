package redeemsquadreward

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

// Result carries the squad redemption, Failure is set when a group check rejected the command.
// A replay by the host returns the original redemption.
type Result struct {
	shell.HandlerResult
	Failure        *core.Failure
	RedemptionID   core.RedemptionIDString
	RedemptionCode string
	Debits         []core.MemberDebit
	Squad          core.SquadState
}

// CommandHandler runs Query → Unmarshal → Decide → Append with retries on concurrency conflicts.
type CommandHandler struct {
	eventStore   EventStore
	retryOptions []shell.RetryOption
	timeout      time.Duration
	generateCode core.RedemptionCodeGenerator
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

// Handle executes the command and reports the squad redemption together with the retry metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if command.SquadID == "" || command.AccountID == "" {
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

	events := append(loaded.Events, decision.Events...)
	result.Squad, _ = core.FindSquad(core.ProjectSquads(events, command.OccurredAt), command.SquadID)
	result.Squad = result.Squad.WithWalletBalances(core.LiveWalletBalances(events, result.Squad))

	if decision.Failure == nil && result.Squad.RedemptionID != "" {
		result.RedemptionID = result.Squad.RedemptionID
		result.RedemptionCode = result.Squad.RedemptionCode
		result.Debits = debitsOf(events, result.Squad.RedemptionID)
	}

	return result, nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
) (boundaries.Loaded, core.DecisionResult, error) {

	ctx = eventstore.WithStrongConsistency(ctx)

	membership, err := boundaries.Load(ctx, h.eventStore, BuildSquadFilter(command.SquadID))
	if err != nil {
		return boundaries.Loaded{}, core.DecisionResult{}, err
	}

	squad, found := core.FindSquad(core.ProjectSquads(membership.Events, command.OccurredAt), command.SquadID)
	if !found {
		return membership, core.NotFoundDecision(core.ErrSquadNotFound), core.ErrSquadNotFound
	}

	loaded, mint, err := h.loadWithUniqueCode(ctx, command, squad.MemberIDs())
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
func (h CommandHandler) loadWithUniqueCode(
	ctx context.Context,
	command Command,
	memberIDs []core.AccountIDString,
) (boundaries.Loaded, Mint, error) {

	mint := Mint{RedemptionID: uuid.NewString()}

	for range maxCodeAttempts {
		mint.Code = h.generateCode()

		loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(command.SquadID, memberIDs, mint.Code))
		if err != nil {
			return boundaries.Loaded{}, Mint{}, err
		}

		if !core.IsRedemptionCodeTaken(mint.Code, loaded.Events) {
			return loaded, mint, nil
		}
	}

	return boundaries.Loaded{}, Mint{}, ErrNoUniqueRedemptionCode
}

func debitsOf(events core.DomainEvents, redemptionID core.RedemptionIDString) []core.MemberDebit {
	var debits []core.MemberDebit

	for _, event := range events {
		if debited, ok := event.(core.SquadRewardDebited); ok && debited.RedemptionID == redemptionID {
			debits = append(debits, core.MemberDebit{AccountID: debited.AccountID, Steps: debited.Steps})
		}
	}

	return debits
}
