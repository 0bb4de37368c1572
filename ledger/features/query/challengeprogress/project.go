package challengeprogress

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Project implements the query logic to rank the participants of a challenge.
//
// Query Logic:
//
//	GIVEN: All participation events of the challenge
//	WHEN: ChallengeProgress query is executed
//	THEN: Participants are ranked by progress, ties go to whoever joined first
//	THEN: The participation of AccountID is returned with its rank if it joined
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) ChallengeProgress {
	ranked := core.RankChallengeParticipants(core.ProjectChallengeParticipants(query.ChallengeID, history, query.At))

	result := ChallengeProgress{
		ChallengeID:      query.ChallengeID,
		ParticipantCount: len(ranked),
		Leaderboard:      ranked,
		SequenceNumber:   maxSequenceNumber,
	}

	for i := range ranked {
		if ranked[i].Status == core.ChallengeStatusCompleted {
			result.CompletedCount++
		}
		if query.AccountID != "" && ranked[i].AccountID == query.AccountID {
			participant := ranked[i]
			result.Participant = &participant
		}
	}

	return result
}

// BuildEventFilter creates the filter for all participation events of the challenge.
func BuildEventFilter(challengeID core.ChallengeIDString) eventstore.Filter {
	return boundaries.New().Challenges(challengeID).Finalize()
}
