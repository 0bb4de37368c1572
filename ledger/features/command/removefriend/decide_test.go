package removefriend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/removefriend"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

var befriended = FakeClock.Add(-time.Hour)

func Test_Decide_Success_FromEitherSide(t *testing.T) {
	history := core.DomainEvents{core.BuildFriendshipStarted("anna", "ben", befriended)}

	for _, accountID := range []core.AccountIDString{"anna", "ben"} {
		t.Run(accountID, func(t *testing.T) {
			// act
			decision := removefriend.Decide(history, removefriend.BuildCommand(accountID, otherOf(accountID), FakeClock))

			// assert
			require.Len(t, decision.Events, 1)
			assert.Equal(t, core.BuildFriendshipEnded(accountID, otherOf(accountID), FakeClock), decision.Events[0])
		})
	}
}

func Test_Decide_Idempotent_WhenNotFriends(t *testing.T) {
	testCases := []struct {
		name    string
		history core.DomainEvents
	}{
		{name: "never friends", history: nil},
		{
			name: "already removed",
			history: core.DomainEvents{
				core.BuildFriendshipStarted("anna", "ben", befriended),
				core.BuildFriendshipEnded("ben", "anna", befriended),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := removefriend.Decide(tc.history, removefriend.BuildCommand("anna", "ben", FakeClock))

			// assert
			assert.True(t, decision.IsIdempotent())
		})
	}
}

func otherOf(accountID core.AccountIDString) core.AccountIDString {
	if accountID == "anna" {
		return "ben"
	}

	return "anna"
}
