package activesquad_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/acceptinvitation"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/createsquad"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/activesquad"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_QueryHandler_Handle_FollowsTheSquadLifecycle(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	ctx := context.Background()
	GivenAccount(t, store, "anna", 5000)
	GivenAccount(t, store, "ben", 3000)
	handler := activesquad.NewQueryHandler(store)

	_, err := createsquad.NewCommandHandler(store).Handle(ctx, createsquad.BuildCommand("s-1", "anna", GivenSquadOffer(8000), []string{"ben"}, FakeClock))
	require.NoError(t, err)

	// act
	invited, err := handler.Handle(ctx, activesquad.BuildQuery("ben", FakeClock))
	require.NoError(t, err)

	_, err = acceptinvitation.NewCommandHandler(store).Handle(ctx, acceptinvitation.BuildCommand("s-1", "ben", FakeClock))
	require.NoError(t, err)

	joined, err := handler.Handle(ctx, activesquad.BuildQuery("ben", FakeClock))
	require.NoError(t, err)

	// assert
	assert.True(t, invited.Found)
	assert.False(t, invited.Joined)
	assert.Equal(t, core.SquadStatusPending, invited.Squad.Status)

	assert.True(t, joined.Joined)
	assert.Equal(t, core.SquadStatusActive, joined.Squad.Status)
	assert.Len(t, joined.Squad.Members, 2)
}

func Test_QueryHandler_Handle_NoSquad(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	GivenAccount(t, store, "anna", 5000)

	// act
	result, err := activesquad.NewQueryHandler(store).Handle(context.Background(), activesquad.BuildQuery("anna", FakeClock))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func Test_QueryHandler_Handle_MissingIdentifier(t *testing.T) {
	// act
	_, err := activesquad.NewQueryHandler(memoryengine.NewEventStore()).Handle(context.Background(), activesquad.BuildQuery("", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingIdentifier)
}
