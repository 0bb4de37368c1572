package friendlist

import (
	"context"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// QueryHandler loads the friendships first and then the registrations of the friends found.
type QueryHandler struct {
	eventStore boundaries.EventQuerier
}

func NewQueryHandler(eventStore boundaries.EventQuerier) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

// Handle reads the friends, a missing account is reported as core.ErrAccountNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (FriendList, error) {
	if query.AccountID == "" {
		return FriendList{}, core.ErrMissingIdentifier
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(query.AccountID))
	if err != nil {
		return FriendList{}, err
	}

	friends := core.ProjectFriends(query.AccountID, loaded.Events)
	if len(friends) == 0 {
		return Project(loaded.Events, query, loaded.MaxSequenceNumber)
	}

	friendIDs := make([]core.AccountIDString, 0, len(friends))
	for _, friend := range friends {
		friendIDs = append(friendIDs, friend.AccountID)
	}

	loaded, err = boundaries.Load(ctx, h.eventStore, BuildEventFilter(query.AccountID, friendIDs...))
	if err != nil {
		return FriendList{}, err
	}

	return Project(loaded.Events, query, loaded.MaxSequenceNumber)
}
