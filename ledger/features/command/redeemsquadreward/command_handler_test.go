package redeemsquadreward_test

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/redeemoffer"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/redeemsquadreward"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

var redemptionCodePattern = regexp.MustCompile(`^KX-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$`)

func Test_CommandHandler_Handle_Success_DebitsEveryPayingMember(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenFullSquad()...)
	handler := redeemsquadreward.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock))

	// assert
	require.NoError(t, err)
	assert.Nil(t, result.Failure)
	assert.False(t, result.Rejected)
	assert.NotEmpty(t, result.RedemptionID)
	assert.Regexp(t, redemptionCodePattern, result.RedemptionCode)
	assert.Equal(t, []core.MemberDebit{{AccountID: "anna", Steps: 4000}, {AccountID: "ben", Steps: 16000}}, result.Debits)
	assert.Equal(t, core.SquadStatusCompleted, result.Squad.Status)

	assert.Equal(t, 1000, Balance(t, store, "anna").Available)
	assert.Equal(t, 0, Balance(t, store, "ben").Available)
	assert.Equal(t, result.RedemptionCode, Squad(t, store, "s-1").RedemptionCode)
}

func Test_CommandHandler_Handle_ReplayByTheHostReturnsTheOriginalRedemption(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenFullSquad()...)
	handler := redeemsquadreward.NewCommandHandler(store)
	command := redeemsquadreward.BuildCommand("s-1", "anna", FakeClock)

	first, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)
	eventsBefore := store.Len()

	// act
	replay, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, replay.Idempotent)
	assert.Equal(t, first.RedemptionID, replay.RedemptionID)
	assert.Equal(t, first.RedemptionCode, replay.RedemptionCode)
	assert.Equal(t, first.Debits, replay.Debits)
	assert.Equal(t, eventsBefore, store.Len())
}

func Test_CommandHandler_Handle_RejectedAppendsTheFailureEvent(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenFullSquad()...)
	Given(t, store, givenSpentElsewhere("ben", 2000))
	handler := redeemsquadreward.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	require.NotNil(t, result.Failure)
	assert.Equal(t, core.FailureInsufficientSquadBalance, result.Failure.Code)
	assert.Empty(t, result.RedemptionCode)
	assert.Empty(t, result.Debits)
	assert.Equal(t, 19000, result.Squad.TotalWalletBalance())

	events := AllEvents(t, store)
	assert.Equal(t, core.RedeemingSquadRewardFailedEventType, events[len(events)-1].EventType())
	assert.Equal(t, 5000, Balance(t, store, "anna").Available)
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	GivenAccount(t, store, "anna", 5000)
	handler := redeemsquadreward.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrSquadNotFound)
}

func Test_CommandHandler_Handle_MissingIdentifier(t *testing.T) {
	// arrange
	handler := redeemsquadreward.NewCommandHandler(memoryengine.NewEventStore())

	// act
	_, err := handler.Handle(context.Background(), redeemsquadreward.BuildCommand("s-1", "", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingIdentifier)
}

func Test_CommandHandler_Handle_FailsWhenNoUniqueCodeCanBeMinted(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenFullSquad()...)
	Given(t, store, givenSpentElsewhere("cleo", 100))
	handler := redeemsquadreward.NewCommandHandler(store, redeemsquadreward.WithCodeGenerator(func() string { return "KX-OTHER1" }))
	eventsBefore := store.Len()

	// act
	_, err := handler.Handle(context.Background(), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock))

	// assert
	assert.ErrorIs(t, err, redeemsquadreward.ErrNoUniqueRedemptionCode)
	assert.Equal(t, eventsBefore, store.Len())
}

func Test_CommandHandler_Handle_ConcurrentMemberSpendNeverOverdrawsTheWallet(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenFullSquad()...)
	squadHandler := redeemsquadreward.NewCommandHandler(store, redeemsquadreward.WithRetryOptions(FastRetries()...))
	offerHandler := redeemoffer.NewCommandHandler(store, redeemoffer.WithRetryOptions(FastRetries()...))
	offer := core.Offer{OfferID: "coffee", PartnerID: "cafe", Title: "Coffee", StepsRequired: 2000}

	var squadResult redeemsquadreward.Result
	var offerResult redeemoffer.Result
	var squadErr, offerErr error

	// act
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		squadResult, squadErr = squadHandler.Handle(context.Background(), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock))
	}()
	go func() {
		defer wg.Done()
		offerResult, offerErr = offerHandler.Handle(context.Background(), redeemoffer.BuildCommand("ben", "op-1", offer, FakeClock))
	}()
	wg.Wait()

	// assert
	require.NoError(t, squadErr)
	require.NoError(t, offerErr)
	assert.NotEqual(t, squadResult.Rejected, offerResult.Rejected)

	if squadResult.Rejected {
		assert.Equal(t, core.FailureInsufficientSquadBalance, squadResult.Failure.Code)
		assert.Equal(t, 14000, Balance(t, store, "ben").Available)
	} else {
		assert.Equal(t, core.FailureInsufficientBalance, offerResult.Failure.Code)
		assert.Equal(t, 0, Balance(t, store, "ben").Available)
	}
}
