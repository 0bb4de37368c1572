package cancelsquad_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/cancelsquad"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

var created = FakeClock.Add(-time.Hour)

func Test_Decide_Success_WhenHostCancels(t *testing.T) {
	// arrange
	history := ActiveSquadEvents("s-1", "anna", 10000, created, "ben")

	// act
	decision := cancelsquad.Decide(history, cancelsquad.BuildCommand("s-1", "anna", FakeClock))

	// assert
	require.Len(t, decision.Events, 1)
	assert.Equal(t, core.BuildSquadCancelled("s-1", "anna", FakeClock), decision.Events[0])
}

func Test_Decide_Idempotent_WhenAlreadyCancelled(t *testing.T) {
	// arrange
	history := append(SquadEvents("s-1", "anna", 10000, created, "ben"), core.BuildSquadCancelled("s-1", "anna", created))

	// act
	decision := cancelsquad.Decide(history, cancelsquad.BuildCommand("s-1", "anna", FakeClock))

	// assert
	assert.True(t, decision.IsIdempotent())
}

func Test_Decide_Rejected(t *testing.T) {
	squad := ActiveSquadEvents("s-1", "anna", 1000, created, "ben")
	redeemed := core.BuildSquadRewardRedeemed(core.SquadState{ID: "s-1", HostID: "anna", TargetSteps: 1000}, "r-1", "KX-ABCDEF", created)

	testCases := []struct {
		name        string
		history     core.DomainEvents
		accountID   string
		wantFailure core.Failure
	}{
		{
			name:        "member is not the host",
			history:     squad,
			accountID:   "ben",
			wantFailure: core.BuildFailure(core.FailureNotSquadHost, core.ReasonOnlyHostCanCancel),
		},
		{
			name:        "squad already redeemed",
			history:     append(append(core.DomainEvents{}, squad...), redeemed),
			accountID:   "anna",
			wantFailure: core.BuildFailure(core.FailureSquadNotActive, core.ReasonSquadCompleted),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := cancelsquad.Decide(tc.history, cancelsquad.BuildCommand("s-1", tc.accountID, FakeClock))

			// assert
			assert.True(t, decision.IsRejected())
			assert.Equal(t, tc.wantFailure, *decision.Failure)
			assert.Equal(t, core.CancelingSquadFailedEventType, decision.Events[0].EventType())
		})
	}
}
