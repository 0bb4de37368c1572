package addfriend_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/addfriend"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_CommandHandler_Handle_AddsOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenAccounts("anna", "ben")...)
	handler := addfriend.NewCommandHandler(store)

	// act
	first, err := handler.Handle(context.Background(), addfriend.BuildCommand("anna", "ben", FakeClock))
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), addfriend.BuildCommand("ben", "anna", FakeClock))

	// assert
	require.NoError(t, err)
	assert.False(t, first.Idempotent)
	assert.True(t, first.Friends)
	assert.True(t, second.Idempotent)
	assert.True(t, second.Friends)
	assert.True(t, core.AreFriends("anna", "ben", AllEvents(t, store)))
	assert.Equal(t, 3, store.Len())
}

func Test_CommandHandler_Handle_ConcurrentRequestsFromBothSidesStartOneFriendship(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenAccounts("anna", "ben")...)
	handler := addfriend.NewCommandHandler(store, addfriend.WithRetryOptions(FastRetries()...))

	var wg sync.WaitGroup
	results := make([]addfriend.Result, 2)
	errs := make([]error, 2)

	// act
	for i, command := range []addfriend.Command{
		addfriend.BuildCommand("anna", "ben", FakeClock),
		addfriend.BuildCommand("ben", "anna", FakeClock),
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = handler.Handle(context.Background(), command)
		}()
	}
	wg.Wait()

	// assert
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, results[0].Idempotent, results[1].Idempotent)
	assert.Equal(t, 1, countOf(core.FriendshipStartedEventType, EventTypes(AllEvents(t, store))))
}

func Test_CommandHandler_Handle_RejectsYourself(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenAccounts("anna")...)

	// act
	result, err := addfriend.NewCommandHandler(store).Handle(context.Background(), addfriend.BuildCommand("anna", "anna", FakeClock))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.False(t, result.Friends)
	assert.Equal(t, core.FailureInvalidFriend, result.Failure.Code)
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenAccounts("anna")...)

	// act
	_, err := addfriend.NewCommandHandler(store).Handle(context.Background(), addfriend.BuildCommand("anna", "ben", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrAccountNotFound)
	assert.Equal(t, 1, store.Len())
}

func Test_CommandHandler_Handle_MissingIdentifier(t *testing.T) {
	// act
	_, err := addfriend.NewCommandHandler(memoryengine.NewEventStore()).Handle(context.Background(), addfriend.BuildCommand("anna", "", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingIdentifier)
}

func countOf(eventType string, eventTypes []string) int {
	count := 0
	for _, et := range eventTypes {
		if et == eventType {
			count++
		}
	}

	return count
}
