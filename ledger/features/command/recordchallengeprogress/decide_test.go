package recordchallengeprogress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/recordchallengeprogress"
	. "github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/featuretest" //nolint:revive
)

var joined = FakeClock.Add(-time.Hour)

func givenChallenge() core.Challenge {
	return core.Challenge{
		ChallengeID: "walk-10k",
		Title:       "10k steps",
		Goal:        10000,
		GoalUnit:    "steps",
		EndsAt:      FakeClock.Add(24 * time.Hour),
	}
}

func givenJoined() core.DomainEvents {
	return core.DomainEvents{core.BuildChallengeJoined("anna", givenChallenge(), joined)}
}

func participantOf(history core.DomainEvents) core.ChallengeParticipant {
	return core.ProjectChallengeParticipants("walk-10k", history, joined)[0]
}

func Test_Decide_Success_RecordsThePercent(t *testing.T) {
	// act
	decision := recordchallengeprogress.Decide(givenJoined(), recordchallengeprogress.BuildCommand("walk-10k", "anna", 2500, FakeClock))

	// assert
	require.Len(t, decision.Events, 1)
	recorded := decision.Events[0].(core.ChallengeProgressRecorded)
	assert.Equal(t, 2500, recorded.Progress)
	assert.Equal(t, 25, recorded.ProgressPercent)
	assert.False(t, recorded.Completed)
}

func Test_Decide_Success_CompletesAtTheGoal(t *testing.T) {
	// act
	decision := recordchallengeprogress.Decide(givenJoined(), recordchallengeprogress.BuildCommand("walk-10k", "anna", 12000, FakeClock))

	// assert
	require.Len(t, decision.Events, 1)
	assert.Equal(t, core.BuildChallengeProgressRecorded(participantOf(givenJoined()), 12000, FakeClock), decision.Events[0])
	assert.True(t, decision.Events[0].(core.ChallengeProgressRecorded).Completed)
	assert.Equal(t, 100, decision.Events[0].(core.ChallengeProgressRecorded).ProgressPercent)
}

func Test_Decide_Idempotent(t *testing.T) {
	history := givenJoined()
	completed := append(append(core.DomainEvents{}, history...), core.BuildChallengeProgressRecorded(participantOf(history), 10000, joined))
	halfway := append(append(core.DomainEvents{}, history...), core.BuildChallengeProgressRecorded(participantOf(history), 5000, joined))

	testCases := []struct {
		name     string
		history  core.DomainEvents
		progress int
	}{
		{name: "already completed", history: completed, progress: 3000},
		{name: "progress unchanged", history: halfway, progress: 5000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := recordchallengeprogress.Decide(tc.history, recordchallengeprogress.BuildCommand("walk-10k", "anna", tc.progress, FakeClock))

			// assert
			assert.True(t, decision.IsIdempotent())
		})
	}
}

func Test_Decide_Rejected(t *testing.T) {
	testCases := []struct {
		name        string
		accountID   string
		progress    int
		at          time.Time
		wantFailure core.Failure
	}{
		{
			name:        "account did not join",
			accountID:   "ben",
			progress:    100,
			at:          FakeClock,
			wantFailure: core.BuildFailure(core.FailureNotChallengeParticipant, core.ReasonJoinChallengeFirst),
		},
		{
			name:        "challenge ended",
			accountID:   "anna",
			progress:    100,
			at:          givenChallenge().EndsAt,
			wantFailure: core.BuildFailure(core.FailureChallengeNotActive, core.ReasonChallengeEnded),
		},
		{
			name:        "negative progress",
			accountID:   "anna",
			progress:    -1,
			at:          FakeClock,
			wantFailure: core.BuildFailure(core.FailureInvalidAmount, core.ReasonProgressNotNegative),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := recordchallengeprogress.Decide(givenJoined(), recordchallengeprogress.BuildCommand("walk-10k", tc.accountID, tc.progress, tc.at))

			// assert
			assert.True(t, decision.IsRejected())
			assert.Equal(t, tc.wantFailure, *decision.Failure)
			assert.Equal(t, core.RecordingChallengeProgressFailedEventType, decision.Events[0].EventType())
		})
	}
}
