package addfriend

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether two accounts become friends.
//
// Business Rules:
//
//	GIVEN: Two opened accounts
//	WHEN: AddFriend command is received
//	THEN: FriendshipStarted event is generated with the pair ordered by id
//	ERROR: InvalidFriend if the account adds itself
//	NOT FOUND: ErrAccountNotFound if either account was never opened
//	IDEMPOTENCY: If the accounts are already friends, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.AccountID == command.FriendID {
		return reject(command, core.BuildFailure(core.FailureInvalidFriend, core.ReasonCannotFriendYourself))
	}

	if !core.ProjectAccount(command.AccountID, history).Exists || !core.ProjectAccount(command.FriendID, history).Exists {
		return core.NotFoundDecision(core.ErrAccountNotFound)
	}

	if core.AreFriends(command.AccountID, command.FriendID, history) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildFriendshipStarted(command.AccountID, command.FriendID, command.OccurredAt),
	)
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildAddingFriendFailed(command.AccountID, command.FriendID, failure, command.OccurredAt),
		failure,
	)
}

// BuildEventFilter creates the filter for the registrations of both accounts and the friendship of the pair.
func BuildEventFilter(accountID core.AccountIDString, friendID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Registrations(accountID, friendID).Friendship(accountID, friendID).Finalize()
}
