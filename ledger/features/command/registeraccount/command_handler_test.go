package registeraccount_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/registeraccount"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := registeraccount.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), registeraccount.BuildCommand("anna", "Anna", "cat.png", FakeClock))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.True(t, result.Account.Exists)
	assert.Equal(t, "Anna", result.Account.DisplayName)
	assert.Equal(t, core.Balance{}, result.Account.Balance())
	assert.Equal(t, []string{core.AccountOpenedEventType}, EventTypes(AllEvents(t, store)))
}

func Test_CommandHandler_Handle_Idempotent_WhenRegisteredTwice(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := registeraccount.NewCommandHandler(store)
	command := registeraccount.BuildCommand("anna", "Anna", "cat.png", FakeClock)

	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.True(t, result.Account.Exists)
	assert.Equal(t, 1, store.Len())
}

func Test_CommandHandler_Handle_RejectsMissingAccountID(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := registeraccount.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), registeraccount.BuildCommand("", "Anna", "cat.png", FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingIdentifier)
	assert.Equal(t, 0, store.Len())
}

func Test_CommandHandler_Handle_FailsOnCanceledContext(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := registeraccount.NewCommandHandler(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	result, err := handler.Handle(ctx, registeraccount.BuildCommand("anna", "Anna", "cat.png", FakeClock))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 0, store.Len())
}
