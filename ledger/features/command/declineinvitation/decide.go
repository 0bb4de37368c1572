package declineinvitation

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether a decline cancels the squad.
//
// Business Rules:
//
//	GIVEN: A member of a squad
//	WHEN: DeclineSquadInvitation command is received
//	THEN: SquadInvitationDeclined event is generated, which cancels the squad
//	NOT FOUND: ErrSquadNotFound
//	ERROR: NotSquadMember if the account is not a member
//	ERROR: SquadNotActive if the squad is completed or expired
//	IDEMPOTENCY: If the squad is already cancelled, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	squad, found := core.FindSquad(core.ProjectSquads(history, command.OccurredAt), command.SquadID)
	if !found {
		return core.NotFoundDecision(core.ErrSquadNotFound)
	}

	if _, invited := squad.Member(command.AccountID); !invited {
		return reject(command, core.BuildFailure(core.FailureNotSquadMember, core.ReasonNotSquadMember))
	}

	if squad.Status == core.SquadStatusCancelled {
		return core.IdempotentDecision()
	}

	if squad.IsTerminal() {
		return reject(command, core.BuildFailure(core.FailureSquadNotActive, core.SquadNotActiveReason(squad.Status)))
	}

	return core.SuccessDecision(
		core.BuildSquadInvitationDeclined(command.SquadID, command.AccountID, command.OccurredAt),
	)
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildSquadOperationFailed(
			core.DecliningSquadInvitationFailedEventType,
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
