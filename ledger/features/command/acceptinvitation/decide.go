package acceptinvitation

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether an invitation is accepted.
//
// Business Rules:
//
//	GIVEN: An account invited to a squad
//	WHEN: AcceptSquadInvitation command is received
//	THEN: SquadInvitationAccepted event is generated with the live available balance
//	NOT FOUND: ErrAccountNotFound or ErrSquadNotFound
//	ERROR: NotSquadMember if the account was not invited
//	ERROR: SquadNotActive if the squad is completed, cancelled or expired
//	ERROR: AlreadyInSquad if the account belongs to another pending or active squad, open invitations included
//	IDEMPOTENCY: If the account already joined, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	account := core.ProjectAccount(command.AccountID, history)
	if !account.Exists {
		return core.NotFoundDecision(core.ErrAccountNotFound)
	}

	squads := core.ProjectSquads(history, command.OccurredAt)

	squad, found := core.FindSquad(squads, command.SquadID)
	if !found {
		return core.NotFoundDecision(core.ErrSquadNotFound)
	}

	member, isInvited := squad.Member(command.AccountID)
	if !isInvited || member.Status == core.MemberStatusDeclined {
		return reject(command, core.BuildFailure(core.FailureNotSquadMember, core.ReasonNotSquadMember))
	}

	if member.Status == core.MemberStatusActive {
		return core.IdempotentDecision()
	}

	if squad.IsTerminal() {
		return reject(command, core.BuildFailure(core.FailureSquadNotActive, core.SquadNotActiveReason(squad.Status)))
	}

	if _, joined := core.OtherNonTerminalSquadOf(command.AccountID, command.SquadID, squads); joined {
		return reject(command, core.BuildFailure(core.FailureAlreadyInSquad, core.ReasonAlreadyInAnotherSquad))
	}

	return core.SuccessDecision(
		core.BuildSquadInvitationAccepted(command.SquadID, command.AccountID, account.Balance().Available, command.OccurredAt),
	)
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildSquadOperationFailed(
			core.AcceptingSquadInvitationFailedEventType,
			command.SquadID,
			command.AccountID,
			failure,
			command.OccurredAt,
		),
		failure,
	)
}

// BuildBoundary creates the boundary for the squad and the wallet of the account.
// The memberships of the account are added by boundaries.LoadWithSquadsOf.
func BuildBoundary(command Command) boundaries.Boundary {
	return boundaries.New().Accounts(command.AccountID).Squads(command.SquadID)
}
