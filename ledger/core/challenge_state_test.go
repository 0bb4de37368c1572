package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

func givenChallenge() core.Challenge {
	return core.Challenge{
		ChallengeID:  "walk-10k",
		Title:        "10k steps",
		Goal:         10000,
		GoalUnit:     "steps",
		RewardPoints: 50,
		EndsAt:       today.Add(7 * 24 * time.Hour),
	}
}

func givenParticipant(accountID core.AccountIDString, joinedAt time.Time) core.ChallengeParticipant {
	joined := core.BuildChallengeJoined(accountID, givenChallenge(), joinedAt)

	return core.ProjectChallengeParticipants("walk-10k", core.DomainEvents{joined}, joinedAt)[0]
}

func Test_ChallengeProgressPercent(t *testing.T) {
	assert.Equal(t, 0, core.ChallengeProgressPercent(0, 10000))
	assert.Equal(t, 0, core.ChallengeProgressPercent(-5, 10000))
	assert.Equal(t, 45, core.ChallengeProgressPercent(4599, 10000))
	assert.Equal(t, 100, core.ChallengeProgressPercent(10000, 10000))
	assert.Equal(t, 100, core.ChallengeProgressPercent(25000, 10000))
	assert.Equal(t, 0, core.ChallengeProgressPercent(100, 0))
}

func Test_ProjectChallengeParticipants_TracksProgressUntilCompletion(t *testing.T) {
	// arrange
	anna := givenParticipant("anna", today)
	events := core.DomainEvents{
		core.BuildChallengeJoined("anna", givenChallenge(), today),
		core.BuildChallengeProgressRecorded(anna, 4000, today.Add(time.Hour)),
		core.BuildChallengeProgressRecorded(anna, 10500, today.Add(2*time.Hour)),
		core.BuildChallengeProgressRecorded(anna, 200, today.Add(3*time.Hour)),
	}

	// act
	participants := core.ProjectChallengeParticipants("walk-10k", events, today.Add(4*time.Hour))

	// assert
	require.Len(t, participants, 1)
	assert.Equal(t, core.ChallengeStatusCompleted, participants[0].Status)
	assert.Equal(t, 10500, participants[0].CurrentProgress)
	assert.Equal(t, 100, participants[0].ProgressPercent)
	assert.Equal(t, today.Add(2*time.Hour), participants[0].CompletedAt)
}

func Test_ProjectChallengeParticipants_FailsUnfinishedParticipantsAtTheEnd(t *testing.T) {
	// arrange
	anna := givenParticipant("anna", today)
	events := core.DomainEvents{
		core.BuildChallengeJoined("anna", givenChallenge(), today),
		core.BuildChallengeJoined("ben", givenChallenge(), today),
		core.BuildChallengeProgressRecorded(anna, 10000, today),
	}
	end := givenChallenge().EndsAt

	// act
	before := core.ProjectChallengeParticipants("walk-10k", events, end.Add(-time.Second))
	after := core.ProjectChallengeParticipants("walk-10k", events, end)

	// assert
	assert.Equal(t, core.ChallengeStatusActive, before[1].Status)
	assert.Equal(t, core.ChallengeStatusCompleted, after[0].Status)
	assert.Equal(t, core.ChallengeStatusFailed, after[1].Status)
}

func Test_ProjectChallengeParticipants_IgnoresOtherChallenges(t *testing.T) {
	// arrange
	other := givenChallenge()
	other.ChallengeID = "stairs"
	events := core.DomainEvents{
		core.BuildChallengeJoined("anna", other, today),
		core.BuildChallengeJoined("ben", givenChallenge(), today),
	}

	// act
	participants := core.ProjectChallengeParticipants("walk-10k", events, today)

	// assert
	require.Len(t, participants, 1)
	assert.Equal(t, "ben", participants[0].AccountID)
}

func Test_RankChallengeParticipants_SharesRanksOnEqualProgress(t *testing.T) {
	// arrange
	anna := givenParticipant("anna", today)
	ben := givenParticipant("ben", today.Add(time.Minute))
	cleo := givenParticipant("cleo", today.Add(2*time.Minute))
	anna.CurrentProgress, ben.CurrentProgress, cleo.CurrentProgress = 3000, 8000, 3000

	// act
	ranked := core.RankChallengeParticipants([]core.ChallengeParticipant{anna, ben, cleo})

	// assert
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"ben", "anna", "cleo"}, []string{ranked[0].AccountID, ranked[1].AccountID, ranked[2].AccountID})
	assert.Equal(t, []int{1, 2, 2}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
	assert.Zero(t, anna.Rank)
}
