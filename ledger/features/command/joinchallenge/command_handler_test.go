package joinchallenge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/joinchallenge"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_CommandHandler_Handle_JoinsOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	GivenAccount(t, store, "anna", 0)
	handler := joinchallenge.NewCommandHandler(store)
	command := joinchallenge.BuildCommand("anna", givenChallenge(), FakeClock)

	// act
	first, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.False(t, first.Idempotent)
	assert.True(t, second.Idempotent)
	assert.Equal(t, core.ChallengeStatusActive, second.Participant.Status)
	assert.Equal(t, 0, second.Participant.CurrentProgress)
	assert.Equal(t, 70000, second.Participant.Goal)
	assert.Equal(t, []string{core.AccountOpenedEventType, core.ChallengeJoinedEventType}, EventTypes(AllEvents(t, store)))
}

func Test_CommandHandler_Handle_RejectsEndedChallenges(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	GivenAccount(t, store, "anna", 0)
	ended := givenChallenge()
	ended.EndsAt = opened

	// act
	result, err := joinchallenge.NewCommandHandler(store).Handle(context.Background(), joinchallenge.BuildCommand("anna", ended, FakeClock))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Equal(t, core.FailureChallengeNotActive, result.Failure.Code)
	assert.Empty(t, result.Participant.AccountID)
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	// act
	_, err := joinchallenge.NewCommandHandler(memoryengine.NewEventStore()).Handle(context.Background(), joinchallenge.BuildCommand("anna", givenChallenge(), FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrAccountNotFound)
}
