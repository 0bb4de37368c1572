package contributesteps

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether a pledge is accepted.
//
// Business Rules:
//
//	GIVEN: A member who joined a squad
//	WHEN: ContributeSquadSteps command is received
//	THEN: SquadStepsContributed event is generated
//	NOT FOUND: ErrAccountNotFound or ErrSquadNotFound
//	ERROR: InvalidAmount if the steps are not positive
//	ERROR: NotSquadMember if the account is not a member or did not join yet
//	ERROR: SquadNotActive if the squad is completed, cancelled or expired
//	ERROR: InsufficientBalance if the available steps minus earlier pledges do not cover the pledge
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	account := core.ProjectAccount(command.AccountID, history)
	if !account.Exists {
		return core.NotFoundDecision(core.ErrAccountNotFound)
	}

	squad, found := core.FindSquad(core.ProjectSquads(history, command.OccurredAt), command.SquadID)
	if !found {
		return core.NotFoundDecision(core.ErrSquadNotFound)
	}

	if command.Steps <= 0 {
		return reject(command, core.BuildFailure(core.FailureInvalidAmount, core.ReasonStepsMustBePositive))
	}

	member, isMember := squad.Member(command.AccountID)
	if !isMember || member.Status == core.MemberStatusDeclined {
		return reject(command, core.BuildFailure(core.FailureNotSquadMember, core.ReasonNotSquadMember))
	}

	if member.Status != core.MemberStatusActive {
		return reject(command, core.BuildFailure(core.FailureNotSquadMember, core.ReasonOnlyActiveMembers))
	}

	if squad.IsTerminal() {
		return reject(command, core.BuildFailure(core.FailureSquadNotActive, core.SquadNotActiveReason(squad.Status)))
	}

	unpledged := max(0, account.Balance().Available-member.StepsContributed)
	if command.Steps > unpledged {
		return reject(command, core.BuildFailure(
			core.FailureInsufficientBalance,
			core.InsufficientBalanceReason(command.Steps, unpledged),
		))
	}

	return core.SuccessDecision(
		core.BuildSquadStepsContributed(command.SquadID, command.AccountID, command.Steps, command.OccurredAt),
	)
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildSquadOperationFailed(
			core.ContributingSquadStepsFailedEventType,
			command.SquadID,
			command.AccountID,
			failure,
			command.OccurredAt,
		),
		failure,
	)
}

// BuildEventFilter creates the filter for the squad and the wallet of the member.
func BuildEventFilter(squadID core.SquadIDString, accountID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Accounts(accountID).Squads(squadID).Finalize()
}
