package recorddailysteps

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Settings are the reconciler tunables of a handler.
type Settings struct {
	DailyGoal        int
	MinimumStepDelta int
}

// DefaultSettings returns a goal of 10,000 steps and a minimum delta of 100 steps.
func DefaultSettings() Settings {
	return Settings{
		DailyGoal:        core.DefaultDailyGoal,
		MinimumStepDelta: core.DefaultMinimumStepDelta,
	}
}

// Decide implements the business logic to determine whether a step sample is persisted.
//
// Business Rules:
//
//	GIVEN: An account and a sample of today's steps
//	WHEN: RecordDailySteps command is received
//	THEN: DailyStepsRecorded event is generated with the reconciled entry and lifetime total
//	NOT FOUND: ErrAccountNotFound if the account is not open
//	IDEMPOTENCY: If today's stored sample differs by no more than the minimum delta and the
//	             command is not forced, no event is generated (skipped)
func Decide(history core.DomainEvents, command Command, settings Settings) core.DecisionResult {
	account := core.ProjectAccount(command.AccountID, history)
	if !account.Exists {
		return core.NotFoundDecision(core.ErrAccountNotFound)
	}

	today := core.ToDateKey(command.OccurredAt)

	if !core.ShouldPersistSteps(account.StepHistory, today, command.Steps, settings.MinimumStepDelta, command.Force) {
		return core.IdempotentDecision()
	}

	dailyGoal := settings.DailyGoal
	if command.DailyGoal > 0 {
		dailyGoal = command.DailyGoal
	}

	reconciled := core.ReconcileStepHistory(account.StepHistory, today, command.Steps, dailyGoal, account.LifetimeSteps)

	return core.SuccessDecision(
		core.BuildDailyStepsRecorded(command.AccountID, reconciled.Entry, reconciled.LifetimeSteps, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for the wallet events of the account.
func BuildEventFilter(accountID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Accounts(accountID).Finalize()
}
