package removefriend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/removefriend"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_CommandHandler_Handle_RemovesOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, core.BuildFriendshipStarted("anna", "ben", befriended), core.BuildFriendshipStarted("anna", "cleo", befriended))
	handler := removefriend.NewCommandHandler(store)
	command := removefriend.BuildCommand("ben", "anna", FakeClock)

	// act
	first, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, first.Removed)
	assert.False(t, second.Removed)
	assert.True(t, second.Idempotent)
	assert.Equal(t, []core.Friend{{AccountID: "cleo", Since: befriended}}, core.ProjectFriends("anna", AllEvents(t, store)))
}

func Test_CommandHandler_Handle_MissingIdentifier(t *testing.T) {
	// act
	_, err := removefriend.NewCommandHandler(memoryengine.NewEventStore()).Handle(context.Background(), removefriend.BuildCommand("", "ben", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingIdentifier)
}
