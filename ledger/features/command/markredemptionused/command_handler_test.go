package markredemptionused_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/markredemptionused"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_CommandHandler_Handle_MarksTheRedemptionUsedOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	GivenAccount(t, store, "anna", 5000)
	Given(t, store, givenRedeemed("anna", "r-1", time.Time{}))
	handler := markredemptionused.NewCommandHandler(store)
	command := markredemptionused.BuildCommand("anna", "r-1", FakeClock)

	// act
	first, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), markredemptionused.BuildCommand("anna", "r-1", FakeClock.Add(time.Minute)))

	// assert
	require.NoError(t, err)
	assert.Nil(t, first.Failure)
	assert.Equal(t, core.RedemptionStatusUsed, first.Redemption.Status)
	assert.Equal(t, FakeClock, first.Redemption.UsedAt)

	assert.True(t, second.Rejected)
	assert.Equal(t, core.ReasonRedemptionAlreadyUsed, second.Failure.Message)

	account := core.ProjectAccount("anna", AllEvents(t, store))
	require.Len(t, account.Redemptions, 1)
	assert.Equal(t, core.RedemptionStatusUsed, account.Redemptions[0].Status)
	assert.Equal(t, 4000, account.Balance().Available)
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	Given(t, store, givenRedeemed("ben", "r-1", time.Time{}))
	handler := markredemptionused.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), markredemptionused.BuildCommand("anna", "r-1", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrRedemptionNotFound)
	assert.Equal(t, 1, store.Len())
}
