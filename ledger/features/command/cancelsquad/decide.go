package cancelsquad

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether a squad is cancelled.
//
// Business Rules:
//
//	GIVEN: A squad and its host
//	WHEN: CancelSquad command is received
//	THEN: SquadCancelled event is generated
//	NOT FOUND: ErrSquadNotFound
//	ERROR: NotSquadHost if the account is not the host
//	ERROR: SquadNotActive if the squad is completed or expired
//	IDEMPOTENCY: If the squad is already cancelled, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	squad, found := core.FindSquad(core.ProjectSquads(history, command.OccurredAt), command.SquadID)
	if !found {
		return core.NotFoundDecision(core.ErrSquadNotFound)
	}

	if squad.HostID != command.AccountID {
		return reject(command, core.BuildFailure(core.FailureNotSquadHost, core.ReasonOnlyHostCanCancel))
	}

	if squad.Status == core.SquadStatusCancelled {
		return core.IdempotentDecision()
	}

	if squad.IsTerminal() {
		return reject(command, core.BuildFailure(core.FailureSquadNotActive, core.SquadNotActiveReason(squad.Status)))
	}

	return core.SuccessDecision(
		core.BuildSquadCancelled(command.SquadID, command.AccountID, command.OccurredAt),
	)
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildSquadOperationFailed(
			core.CancelingSquadFailedEventType,
			command.SquadID,
			command.AccountID,
			failure,
			command.OccurredAt,
		),
		failure,
	)
}

// BuildEventFilter creates the filter for all events of the squad.
func BuildEventFilter(squadID core.SquadIDString) eventstore.Filter {
	return boundaries.New().Squads(squadID).Finalize()
}
