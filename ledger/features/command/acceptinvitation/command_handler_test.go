package acceptinvitation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/acceptinvitation"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenAccounts()...)
	Given(t, store, SquadEvents("s-1", "anna", 10000, FakeClock.Add(-time.Hour), "ben")...)
	handler := acceptinvitation.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), acceptinvitation.BuildCommand("s-1", "ben", FakeClock))

	// assert
	require.NoError(t, err)
	assert.Nil(t, result.Failure)
	assert.Equal(t, core.SquadStatusActive, result.Squad.Status)

	member, _ := result.Squad.Member("ben")
	assert.Equal(t, core.MemberStatusActive, member.Status)
	assert.Equal(t, 3000, member.WalletBalance)
	assert.Equal(t, core.SquadStatusActive, Squad(t, store, "s-1").Status)
}

func Test_CommandHandler_Handle_ConcurrentAcceptancesJoinOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenAccounts()...)
	Given(t, store, SquadEvents("s-1", "anna", 10000, FakeClock.Add(-time.Hour), "ben")...)
	handler := acceptinvitation.NewCommandHandler(store, acceptinvitation.WithRetryOptions(FastRetries()...))

	var results [2]acceptinvitation.Result
	var errs [2]error

	// act
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = handler.Handle(context.Background(), acceptinvitation.BuildCommand("s-1", "ben", FakeClock))
		}()
	}
	wg.Wait()

	// assert
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.False(t, results[0].Rejected)
	assert.False(t, results[1].Rejected)
	assert.True(t, results[0].Idempotent != results[1].Idempotent)

	accepted := 0
	for _, eventType := range EventTypes(AllEvents(t, store)) {
		if eventType == core.SquadInvitationAcceptedEventType {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func Test_CommandHandler_Handle_RejectsWhileInvitedToAnotherSquad(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenAccounts()...)
	Given(t, store, SquadEvents("s-1", "anna", 10000, FakeClock.Add(-time.Hour), "ben")...)
	Given(t, store, SquadEvents("s-2", "cleo", 10000, FakeClock.Add(-time.Hour), "ben")...)
	handler := acceptinvitation.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), acceptinvitation.BuildCommand("s-1", "ben", FakeClock))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Equal(t, core.FailureAlreadyInSquad, result.Failure.Code)
	assert.Equal(t, core.SquadStatusPending, Squad(t, store, "s-1").Status)
}
