package cancelsquad_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/cancelsquad"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_CommandHandler_Handle_CancelsOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, SquadEvents("s-1", "anna", 10000, created, "ben")...)
	handler := cancelsquad.NewCommandHandler(store)
	command := cancelsquad.BuildCommand("s-1", "anna", FakeClock)

	// act
	first, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.False(t, first.Idempotent)
	assert.True(t, second.Idempotent)
	assert.Equal(t, core.SquadStatusCancelled, second.Squad.Status)
	assert.Equal(t, 3, store.Len())
}

func Test_CommandHandler_Handle_RejectsMembers(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, SquadEvents("s-1", "anna", 10000, created, "ben")...)
	handler := cancelsquad.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), cancelsquad.BuildCommand("s-1", "ben", FakeClock))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Equal(t, core.FailureNotSquadHost, result.Failure.Code)
	assert.Equal(t, core.SquadStatusPending, Squad(t, store, "s-1").Status)
}
