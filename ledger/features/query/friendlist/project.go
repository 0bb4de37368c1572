package friendlist

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Project implements the query logic to determine the friends of an account.
//
// Query Logic:
//
//	GIVEN: The registration of the account, its friendship events and the registrations of its friends
//	WHEN: FriendList query is executed
//	THEN: Friends are returned in the order they were added
//	NOT FOUND: ErrAccountNotFound if the account was never opened
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) (FriendList, error) {
	if !core.ProjectAccount(query.AccountID, history).Exists {
		return FriendList{}, core.ErrAccountNotFound
	}

	friends := core.ProjectFriends(query.AccountID, history)
	views := make([]FriendView, 0, len(friends))

	for _, friend := range friends {
		account := core.ProjectAccount(friend.AccountID, history)
		views = append(views, FriendView{
			AccountID:   friend.AccountID,
			DisplayName: account.DisplayName,
			Avatar:      account.Avatar,
			Since:       friend.Since,
		})
	}

	return FriendList{
		AccountID:      query.AccountID,
		Friends:        views,
		FriendCount:    len(views),
		SequenceNumber: maxSequenceNumber,
	}, nil
}

// BuildEventFilter creates the filter for the registrations of the account and the known friends and its friendship events.
func BuildEventFilter(accountID core.AccountIDString, friendIDs ...core.AccountIDString) eventstore.Filter {
	return boundaries.New().
		Registrations(append([]core.AccountIDString{accountID}, friendIDs...)...).
		Friendships(accountID).
		Finalize()
}
