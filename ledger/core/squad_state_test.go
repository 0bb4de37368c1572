package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

func activeSquad(hostBalance int, memberBalance int, currentSteps int) core.SquadState {
	return core.SquadState{
		ID:           "s-1",
		TargetSteps:  20000,
		CurrentSteps: currentSteps,
		Status:       core.SquadStatusActive,
		HostID:       "host",
		Members: []core.SquadMember{
			{AccountID: "host", WalletBalance: hostBalance, Status: core.MemberStatusActive},
			{AccountID: "friend", WalletBalance: memberBalance, Status: core.MemberStatusActive},
		},
	}
}

func givenSquadCreated(invitees ...string) core.DomainEvents {
	events := core.DomainEvents{
		core.BuildSquadCreated(
			"s-1",
			core.SquadMemberProfile{AccountID: "host", DisplayName: "Host", WalletBalance: 5000},
			core.SquadOffer{OfferID: "o-1", OfferTitle: "Team lunch", OfferPartner: "Deli", PartnerID: "p-1", TargetSteps: 20000},
			today,
		),
	}

	for _, invitee := range invitees {
		events = append(events, core.BuildSquadMemberInvited("s-1", core.SquadMemberProfile{AccountID: invitee}, today))
	}

	return events
}

func Test_ValidateGroupRedemption_EndToEndScenarios(t *testing.T) {
	t.Run("all members active and balances cover the target", func(t *testing.T) {
		// act
		validation := core.ValidateGroupRedemption(activeSquad(5000, 16000, 20000), "host")

		// assert
		assert.True(t, validation.CanRedeem)
		assert.Nil(t, validation.Failure)
		assert.Equal(t, 21000, validation.TotalWalletBalance)
		assert.Equal(t, 20000, validation.RequiredBalance)
	})

	t.Run("second member still pending", func(t *testing.T) {
		// arrange
		squad := activeSquad(5000, 16000, 20000)
		squad.Members[1].Status = core.MemberStatusPending

		// act
		validation := core.ValidateGroupRedemption(squad, "host")

		// assert
		assert.False(t, validation.CanRedeem)
		require.NotNil(t, validation.Failure)
		assert.Equal(t, core.FailureMembersPending, validation.Failure.Code)
		assert.Equal(t, "1 member(s) haven't joined yet", validation.Failure.Message)
	})
}

func Test_ValidateGroupRedemption_ChecksInOrder(t *testing.T) {
	testCases := []struct {
		name            string
		squad           func() core.SquadState
		accountID       string
		expectedCode    string
		expectedMessage string
	}{
		{
			name:            "only the host may redeem",
			squad:           func() core.SquadState { return activeSquad(0, 0, 0) },
			accountID:       "friend",
			expectedCode:    core.FailureNotSquadHost,
			expectedMessage: core.ReasonOnlyHostCanRedeem,
		},
		{
			name: "pending squad",
			squad: func() core.SquadState {
				s := activeSquad(0, 0, 0)
				s.Status = core.SquadStatusPending
				return s
			},
			accountID:       "host",
			expectedCode:    core.FailureSquadNotActive,
			expectedMessage: core.ReasonSquadPending,
		},
		{
			name: "cancelled squad",
			squad: func() core.SquadState {
				s := activeSquad(0, 0, 0)
				s.Status = core.SquadStatusCancelled
				return s
			},
			accountID:       "host",
			expectedCode:    core.FailureSquadNotActive,
			expectedMessage: core.ReasonSquadCancelled,
		},
		{
			name: "expired squad",
			squad: func() core.SquadState {
				s := activeSquad(0, 0, 0)
				s.Status = core.SquadStatusExpired
				return s
			},
			accountID:       "host",
			expectedCode:    core.FailureSquadNotActive,
			expectedMessage: core.ReasonSquadExpired,
		},
		{
			name: "completed squad",
			squad: func() core.SquadState {
				s := activeSquad(0, 0, 0)
				s.Status = core.SquadStatusCompleted
				return s
			},
			accountID:       "host",
			expectedCode:    core.FailureSquadNotActive,
			expectedMessage: core.ReasonSquadCompleted,
		},
		{
			name:            "wallet balances below target",
			squad:           func() core.SquadState { return activeSquad(5000, 10000, 20000) },
			accountID:       "host",
			expectedCode:    core.FailureInsufficientSquadBalance,
			expectedMessage: "Squad needs 20,000 total steps in wallets. Currently have 15,000",
		},
		{
			name:            "collected steps below target",
			squad:           func() core.SquadState { return activeSquad(5000, 16000, 12500) },
			accountID:       "host",
			expectedCode:    core.FailureSquadStepsIncomplete,
			expectedMessage: "Squad needs 7,500 more steps collected",
		},
		{
			name: "already carries a code",
			squad: func() core.SquadState {
				s := activeSquad(5000, 16000, 20000)
				s.RedemptionCode = "KX-ABCDEF"
				return s
			},
			accountID:       "host",
			expectedCode:    core.FailureAlreadyRedeemed,
			expectedMessage: core.ReasonSquadRewardRedeemed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			validation := core.ValidateGroupRedemption(tc.squad(), tc.accountID)

			// assert
			assert.False(t, validation.CanRedeem)
			require.NotNil(t, validation.Failure)
			assert.Equal(t, tc.expectedCode, validation.Failure.Code)
			assert.Equal(t, tc.expectedMessage, validation.Failure.Message)
		})
	}
}

func Test_ProjectSquads_HostOnlySquadIsActive(t *testing.T) {
	squads := core.ProjectSquads(givenSquadCreated(), today)

	require.Len(t, squads, 1)
	assert.Equal(t, core.SquadStatusActive, squads[0].Status)
	assert.Equal(t, today.Add(core.SquadLifetime), squads[0].ExpiresAt)
	assert.Equal(t, 5000, squads[0].TotalWalletBalance())
}

func Test_ProjectSquads_ActiveOnlyWhenAllMembersActive(t *testing.T) {
	// arrange
	events := givenSquadCreated("friend-1", "friend-2")

	// act
	pending := core.ProjectSquads(events, today)[0]
	events = append(events, core.BuildSquadInvitationAccepted("s-1", "friend-1", 3000, today))
	stillPending := core.ProjectSquads(events, today)[0]
	events = append(events, core.BuildSquadInvitationAccepted("s-1", "friend-2", 4000, today))
	active := core.ProjectSquads(events, today)[0]

	// assert
	assert.Equal(t, core.SquadStatusPending, pending.Status)
	assert.Equal(t, 2, pending.PendingCount())
	assert.Equal(t, core.SquadStatusPending, stillPending.Status)
	assert.Equal(t, core.SquadStatusActive, active.Status)
	assert.Equal(t, 12000, active.TotalWalletBalance())
}

func Test_ProjectSquads_DeclineCancelsTheSquad(t *testing.T) {
	// arrange
	events := append(givenSquadCreated("friend-1"), core.BuildSquadInvitationDeclined("s-1", "friend-1", today))

	// act
	squad := core.ProjectSquads(events, today)[0]

	// assert
	assert.Equal(t, core.SquadStatusCancelled, squad.Status)
	assert.Equal(t, "friend-1", squad.CancelledBy)
	assert.False(t, squad.HasMember("friend-1"))
	assert.True(t, squad.IsTerminal())
}

func Test_ProjectSquads_ExpiresPassively(t *testing.T) {
	events := givenSquadCreated()

	assert.Equal(t, core.SquadStatusActive, core.ProjectSquads(events, today.Add(core.SquadLifetime-time.Second))[0].Status)
	assert.Equal(t, core.SquadStatusExpired, core.ProjectSquads(events, today.Add(core.SquadLifetime))[0].Status)
}

func Test_ProjectSquads_CompletedStaysCompletedAfterExpiry(t *testing.T) {
	// arrange
	events := append(
		givenSquadCreated(),
		core.BuildSquadStepsContributed("s-1", "host", 20000, today),
	)
	squad := core.ProjectSquads(events, today)[0]
	events = append(events, core.BuildSquadRewardRedeemed(squad, "r-1", "KX-ABCDEF", today))

	// act
	completed := core.ProjectSquads(events, today.Add(2*core.SquadLifetime))[0]

	// assert
	assert.Equal(t, core.SquadStatusCompleted, completed.Status)
	assert.Equal(t, "KX-ABCDEF", completed.RedemptionCode)
	assert.Equal(t, "host", completed.RedeemedBy)
	assert.Equal(t, 20000, completed.CurrentSteps)
}

func Test_NonTerminalSquadOf(t *testing.T) {
	// arrange
	events := givenSquadCreated("friend-1")
	events = append(events, core.BuildSquadCreated(
		"s-2",
		core.SquadMemberProfile{AccountID: "other"},
		core.SquadOffer{TargetSteps: 100},
		today,
	))
	events = append(events, core.BuildSquadCancelled("s-2", "other", today))
	squads := core.ProjectSquads(events, today)

	// act
	found, inSquad := core.NonTerminalSquadOf("friend-1", squads)
	_, otherInSquad := core.NonTerminalSquadOf("other", squads)

	// assert
	assert.True(t, inSquad)
	assert.Equal(t, "s-1", found.ID)
	assert.False(t, otherInSquad)
}

func Test_OtherNonTerminalSquadOf_SkipsTheGivenSquad(t *testing.T) {
	// arrange
	events := givenSquadCreated("friend-1")
	squads := core.ProjectSquads(events, today)

	// act
	_, inOther := core.OtherNonTerminalSquadOf("friend-1", "s-1", squads)

	// assert
	assert.False(t, inOther)
}

func Test_OtherNonTerminalSquadOf_CountsOpenInvitations(t *testing.T) {
	// arrange
	events := givenSquadCreated("friend-1")
	events = append(events,
		core.BuildSquadCreated("s-2", core.SquadMemberProfile{AccountID: "other"}, core.SquadOffer{TargetSteps: 100}, today),
		core.BuildSquadMemberInvited("s-2", core.SquadMemberProfile{AccountID: "friend-1"}, today),
	)
	squads := core.ProjectSquads(events, today)

	// act
	found, inOther := core.OtherNonTerminalSquadOf("friend-1", "s-2", squads)

	// assert
	assert.True(t, inOther)
	assert.Equal(t, "s-1", found.ID)
}

func Test_AllocateSquadDebits_TakesPledgesFirst(t *testing.T) {
	// arrange
	squad := activeSquad(0, 0, 20000)
	squad.Members[0].StepsContributed = 8000
	squad.Members[1].StepsContributed = 12000

	// act
	debits := core.AllocateSquadDebits(squad, map[string]int{"host": 12000, "friend": 9000})

	// assert
	assert.Equal(t, []core.MemberDebit{
		{AccountID: "host", Steps: 11000},
		{AccountID: "friend", Steps: 9000},
	}, debits)
}

func Test_AllocateSquadDebits_CapsPledgesAtTarget(t *testing.T) {
	// arrange
	squad := activeSquad(0, 0, 25000)
	squad.Members[0].StepsContributed = 25000

	// act
	debits := core.AllocateSquadDebits(squad, map[string]int{"host": 30000, "friend": 30000})

	// assert
	assert.Equal(t, []core.MemberDebit{{AccountID: "host", Steps: 20000}}, debits)
}

func Test_AllocateSquadDebits_CapsPledgesAtLiveBalance(t *testing.T) {
	// arrange
	squad := activeSquad(0, 0, 20000)
	squad.Members[0].StepsContributed = 15000
	squad.Members[1].StepsContributed = 5000

	// act
	debits := core.AllocateSquadDebits(squad, map[string]int{"host": 4000, "friend": 30000})

	// assert
	assert.Equal(t, []core.MemberDebit{
		{AccountID: "host", Steps: 4000},
		{AccountID: "friend", Steps: 16000},
	}, debits)
}
