package redeemsquadreward_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/redeemsquadreward"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

var givenMint = redeemsquadreward.Mint{RedemptionID: "r-1", Code: "KX-SQUAD1"}

// givenFullSquad is a squad of anna and ben with 20,000 pledged steps and 21,000 steps in the wallets.
func givenFullSquad() core.DomainEvents {
	at := FakeClock.Add(-time.Hour)

	history := AccountEvents("anna", 5000, at)
	history = append(history, AccountEvents("ben", 16000, at)...)
	history = append(history, ActiveSquadEvents("s-1", "anna", 20000, at, "ben")...)

	return append(history,
		core.BuildSquadStepsContributed("s-1", "anna", 4000, at),
		core.BuildSquadStepsContributed("s-1", "ben", 16000, at),
	)
}

func givenSpentElsewhere(accountID core.AccountIDString, steps int) core.DomainEvent {
	offer := core.Offer{OfferID: "coffee", PartnerID: "cafe", Title: "Coffee", StepsRequired: steps}

	return core.BuildOfferRedeemed(accountID, "r-0", "op-0", offer, "KX-OTHER1", time.Time{}, FakeClock.Add(-time.Minute))
}

func Test_Decide_Success_DebitsPledgedStepsFirst(t *testing.T) {
	// act
	decision := redeemsquadreward.Decide(givenFullSquad(), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock), givenMint)

	// assert
	require.True(t, decision.HasEventsToAppend())
	assert.False(t, decision.IsRejected())
	assert.Equal(t,
		[]string{core.SquadRewardRedeemedEventType, core.SquadRewardDebitedEventType, core.SquadRewardDebitedEventType},
		EventTypes(decision.Events),
	)

	redeemed, ok := decision.Events[0].(core.SquadRewardRedeemed)
	require.True(t, ok)
	assert.Equal(t, "anna", redeemed.HostID)
	assert.Equal(t, "r-1", redeemed.RedemptionID)
	assert.Equal(t, "KX-SQUAD1", redeemed.RedemptionCode)
	assert.Equal(t, 20000, redeemed.StepsSpent)
	assert.Equal(t, []string{"anna", "ben"}, redeemed.MemberIDs)

	history := append(givenFullSquad(), decision.Events...)
	assert.Equal(t, 1000, core.ProjectAccount("anna", history).Balance().Available)
	assert.Equal(t, 0, core.ProjectAccount("ben", history).Balance().Available)

	squad, found := core.FindSquad(core.ProjectSquads(history, FakeClock), "s-1")
	require.True(t, found)
	assert.Equal(t, core.SquadStatusCompleted, squad.Status)
}

func Test_Decide_Success_TakesTheRestFromOtherWallets(t *testing.T) {
	// arrange
	history := givenFullSquad()
	history = append(history, core.BuildDailyStepsRecorded(
		"anna",
		core.StepEntry{Date: core.ToDateKey(FakeClock), Steps: 12000, GoalReached: true},
		12000,
		FakeClock.Add(-30*time.Minute),
	))
	history = append(history, givenSpentElsewhere("ben", 6000))

	// act
	decision := redeemsquadreward.Decide(history, redeemsquadreward.BuildCommand("s-1", "anna", FakeClock), givenMint)

	// assert
	require.True(t, decision.HasEventsToAppend())

	var debits []core.MemberDebit
	for _, event := range decision.Events[1:] {
		debited, ok := event.(core.SquadRewardDebited)
		require.True(t, ok)
		debits = append(debits, core.MemberDebit{AccountID: debited.AccountID, Steps: debited.Steps})
	}

	assert.Equal(t, []core.MemberDebit{{AccountID: "anna", Steps: 10000}, {AccountID: "ben", Steps: 10000}}, debits)
}

func Test_Decide_Idempotent_WhenHostAlreadyRedeemed(t *testing.T) {
	// arrange
	first := redeemsquadreward.Decide(givenFullSquad(), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock), givenMint)
	history := append(givenFullSquad(), first.Events...)

	// act
	decision := redeemsquadreward.Decide(history, redeemsquadreward.BuildCommand("s-1", "anna", FakeClock), givenMint)

	// assert
	assert.True(t, decision.IsIdempotent())
	assert.False(t, decision.HasEventsToAppend())
}

func Test_Decide_NotFound_WhenSquadIsMissing(t *testing.T) {
	// act
	decision := redeemsquadreward.Decide(AccountEvents("anna", 5000, FakeClock), redeemsquadreward.BuildCommand("s-1", "anna", FakeClock), givenMint)

	// assert
	assert.ErrorIs(t, decision.Err, core.ErrSquadNotFound)
}

func Test_Decide_Rejected(t *testing.T) {
	at := FakeClock.Add(-time.Hour)

	pendingSquad := append(AccountEvents("anna", 5000, at), AccountEvents("ben", 16000, at)...)
	pendingSquad = append(pendingSquad, SquadEvents("s-1", "anna", 20000, at, "ben")...)

	cancelledSquad := append(givenFullSquad(), core.BuildSquadCancelled("s-1", "anna", FakeClock.Add(-time.Minute)))

	expiredSquad := append(AccountEvents("anna", 5000, at), AccountEvents("ben", 16000, at)...)
	expiredSquad = append(expiredSquad, ActiveSquadEvents("s-1", "anna", 20000, FakeClock.Add(-core.SquadLifetime), "ben")...)

	unpledged := append(AccountEvents("anna", 5000, at), AccountEvents("ben", 16000, at)...)
	unpledged = append(unpledged, ActiveSquadEvents("s-1", "anna", 20000, at, "ben")...)
	unpledged = append(unpledged, core.BuildSquadStepsContributed("s-1", "ben", 15000, at))

	testCases := []struct {
		name        string
		history     core.DomainEvents
		accountID   string
		wantFailure core.Failure
	}{
		{
			name:        "not the host",
			history:     givenFullSquad(),
			accountID:   "ben",
			wantFailure: core.BuildFailure(core.FailureNotSquadHost, core.ReasonOnlyHostCanRedeem),
		},
		{
			name:        "member still pending",
			history:     pendingSquad,
			accountID:   "anna",
			wantFailure: core.BuildFailure(core.FailureSquadNotActive, core.ReasonSquadPending),
		},
		{
			name:        "squad cancelled",
			history:     cancelledSquad,
			accountID:   "anna",
			wantFailure: core.BuildFailure(core.FailureSquadNotActive, core.ReasonSquadCancelled),
		},
		{
			name:        "squad expired",
			history:     expiredSquad,
			accountID:   "anna",
			wantFailure: core.BuildFailure(core.FailureSquadNotActive, core.ReasonSquadExpired),
		},
		{
			name:      "live wallets below target",
			history:   append(givenFullSquad(), givenSpentElsewhere("ben", 2000)),
			accountID: "anna",
			wantFailure: core.BuildFailure(
				core.FailureInsufficientSquadBalance,
				"Squad needs 20,000 total steps in wallets. Currently have 19,000",
			),
		},
		{
			name:        "pledged steps below target",
			history:     unpledged,
			accountID:   "anna",
			wantFailure: core.BuildFailure(core.FailureSquadStepsIncomplete, core.SquadStepsIncompleteReason(5000)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := redeemsquadreward.Decide(tc.history, redeemsquadreward.BuildCommand("s-1", tc.accountID, FakeClock), givenMint)

			// assert
			assert.True(t, decision.IsRejected())
			require.NotNil(t, decision.Failure)
			assert.Equal(t, tc.wantFailure, *decision.Failure)
			require.Len(t, decision.Events, 1)
			assert.Equal(t, core.RedeemingSquadRewardFailedEventType, decision.Events[0].EventType())
		})
	}
}
