package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

func Test_BuildFriendshipStarted_OrdersThePair(t *testing.T) {
	// act
	event := core.BuildFriendshipStarted("ben", "anna", today)

	// assert
	assert.Equal(t, "anna", event.AccountID1)
	assert.Equal(t, "ben", event.AccountID2)
	assert.Equal(t, "ben", event.AddedBy)
}

func Test_ProjectFriends_SeesTheFriendshipFromBothSides(t *testing.T) {
	// arrange
	events := core.DomainEvents{
		core.BuildFriendshipStarted("anna", "ben", today),
		core.BuildFriendshipStarted("cleo", "anna", today),
		core.BuildFriendshipStarted("ben", "cleo", today),
	}

	// act
	friends := core.ProjectFriends("anna", events)

	// assert
	require.Len(t, friends, 2)
	assert.Equal(t, "ben", friends[0].AccountID)
	assert.Equal(t, "cleo", friends[1].AccountID)
	assert.True(t, core.AreFriends("cleo", "ben", events))
}

func Test_ProjectFriends_DropsEndedFriendships(t *testing.T) {
	// arrange
	events := core.DomainEvents{
		core.BuildFriendshipStarted("anna", "ben", today),
		core.BuildFriendshipStarted("anna", "cleo", today),
		core.BuildFriendshipEnded("ben", "anna", today),
	}

	// act
	friends := core.ProjectFriends("anna", events)

	// assert
	require.Len(t, friends, 1)
	assert.Equal(t, "cleo", friends[0].AccountID)
	assert.False(t, core.AreFriends("ben", "anna", events))
}

func Test_ProjectFriends_RestartedFriendshipCountsOnce(t *testing.T) {
	// arrange
	events := core.DomainEvents{
		core.BuildFriendshipStarted("anna", "ben", today),
		core.BuildFriendshipStarted("ben", "anna", today),
	}

	// act
	friends := core.ProjectFriends("ben", events)

	// assert
	assert.Len(t, friends, 1)
}
