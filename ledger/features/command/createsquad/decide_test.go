package createsquad_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/createsquad"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

func givenHostAndFriends() core.DomainEvents {
	history := AccountEvents("anna", 8000, FakeClock.Add(-time.Hour))
	history = append(history, AccountEvents("ben", 3000, FakeClock.Add(-time.Hour))...)
	history = append(history, AccountEvents("cleo", 0, FakeClock.Add(-time.Hour))...)

	return history
}

func Test_Decide_Success_InvitesExistingAccountsOnce(t *testing.T) {
	// arrange
	command := createsquad.BuildCommand("s-1", "anna", GivenSquadOffer(20000), []string{"ben", "ghost", "anna", "ben", "cleo"}, FakeClock)

	// act
	decision := createsquad.Decide(givenHostAndFriends(), command)

	// assert
	require.True(t, decision.HasEventsToAppend())
	assert.Equal(t,
		[]string{core.SquadCreatedEventType, core.SquadMemberInvitedEventType, core.SquadMemberInvitedEventType},
		EventTypes(decision.Events),
	)

	created, ok := decision.Events[0].(core.SquadCreated)
	require.True(t, ok)
	assert.Equal(t, 8000, created.HostWalletBalance)
	assert.Equal(t, FakeClock.Add(core.SquadLifetime), created.ExpiresAt)

	invited, ok := decision.Events[1].(core.SquadMemberInvited)
	require.True(t, ok)
	assert.Equal(t, "ben", invited.AccountID)
	assert.Equal(t, 3000, invited.WalletBalance)

	squad, found := core.FindSquad(core.ProjectSquads(decision.Events, FakeClock), "s-1")
	require.True(t, found)
	assert.Equal(t, core.SquadStatusPending, squad.Status)
	assert.Equal(t, []string{"ghost"}, createsquad.MissingInvitees(givenHostAndFriends(), command))
}

func Test_Decide_Idempotent_WhenSquadExists(t *testing.T) {
	// arrange
	history := append(givenHostAndFriends(), SquadEvents("s-1", "anna", 20000, FakeClock, "ben")...)

	// act
	decision := createsquad.Decide(history, createsquad.BuildCommand("s-1", "anna", GivenSquadOffer(20000), []string{"ben"}, FakeClock))

	// assert
	assert.True(t, decision.IsIdempotent())
}

func Test_Decide_Rejected_WhenSquadIDBelongsToAnotherHost(t *testing.T) {
	// arrange
	history := append(givenHostAndFriends(), SquadEvents("s-1", "cleo", 20000, FakeClock, "ben")...)

	// act
	decision := createsquad.Decide(history, createsquad.BuildCommand("s-1", "anna", GivenSquadOffer(20000), []string{"ben"}, FakeClock))

	// assert
	assert.True(t, decision.IsRejected())
	assert.Equal(t, core.BuildFailure(core.FailureNotSquadHost, core.ReasonSquadIDTaken), *decision.Failure)
	require.Len(t, decision.Events, 1)
	assert.Equal(t, core.CreatingSquadFailedEventType, decision.Events[0].EventType())
}

func Test_Decide_NotFound_WhenHostHasNoAccount(t *testing.T) {
	// act
	decision := createsquad.Decide(nil, createsquad.BuildCommand("s-1", "anna", GivenSquadOffer(20000), nil, FakeClock))

	// assert
	assert.ErrorIs(t, decision.Err, core.ErrAccountNotFound)
}

func Test_Decide_Rejected(t *testing.T) {
	testCases := []struct {
		name        string
		history     core.DomainEvents
		targetSteps int
		wantFailure core.Failure
	}{
		{
			name:        "target not positive",
			history:     givenHostAndFriends(),
			targetSteps: 0,
			wantFailure: core.BuildFailure(core.FailureInvalidAmount, core.ReasonTargetMustBePositive),
		},
		{
			name:        "host already hosts a squad",
			history:     append(givenHostAndFriends(), SquadEvents("s-0", "anna", 5000, FakeClock.Add(-time.Minute), "cleo")...),
			targetSteps: 20000,
			wantFailure: core.BuildFailure(core.FailureAlreadyInSquad, core.ReasonAlreadyInActiveSquad),
		},
		{
			name:        "host is invited to a pending squad",
			history:     append(givenHostAndFriends(), SquadEvents("s-0", "cleo", 5000, FakeClock.Add(-time.Minute), "anna")...),
			targetSteps: 20000,
			wantFailure: core.BuildFailure(core.FailureAlreadyInSquad, core.ReasonAlreadyInActiveSquad),
		},
		{
			name:        "host joined a squad",
			history:     append(givenHostAndFriends(), ActiveSquadEvents("s-0", "cleo", 5000, FakeClock.Add(-time.Minute), "anna")...),
			targetSteps: 20000,
			wantFailure: core.BuildFailure(core.FailureAlreadyInSquad, core.ReasonAlreadyInActiveSquad),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := createsquad.Decide(tc.history, createsquad.BuildCommand("s-1", "anna", GivenSquadOffer(tc.targetSteps), []string{"ben"}, FakeClock))

			// assert
			assert.True(t, decision.IsRejected())
			assert.Equal(t, tc.wantFailure, *decision.Failure)
			require.Len(t, decision.Events, 1)
			assert.Equal(t, core.CreatingSquadFailedEventType, decision.Events[0].EventType())
		})
	}
}

func Test_Decide_Success_WhenEarlierSquadIsTerminal(t *testing.T) {
	// arrange
	history := append(givenHostAndFriends(), SquadEvents("s-0", "anna", 5000, FakeClock.Add(-time.Hour), "cleo")...)
	history = append(history, core.BuildSquadCancelled("s-0", "anna", FakeClock.Add(-time.Minute)))

	// act
	decision := createsquad.Decide(history, createsquad.BuildCommand("s-1", "anna", GivenSquadOffer(20000), []string{"ben"}, FakeClock))

	// assert
	assert.True(t, decision.HasEventsToAppend())
	assert.False(t, decision.IsRejected())
}
