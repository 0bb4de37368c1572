package removefriend

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether a friendship ends.
//
// Business Rules:
//
//	GIVEN: A friendship between the two accounts
//	WHEN: RemoveFriend command is received
//	THEN: FriendshipEnded event is generated
//	IDEMPOTENCY: If the accounts are not friends, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if !core.AreFriends(command.AccountID, command.FriendID, history) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildFriendshipEnded(command.AccountID, command.FriendID, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for the friendship of the pair.
func BuildEventFilter(accountID core.AccountIDString, friendID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Friendship(accountID, friendID).Finalize()
}
