package challengeprogress

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// ChallengeProgress represents the query result for one challenge.
// Participant is nil when no account was asked for or the account did not join.
type ChallengeProgress struct {
	ChallengeID      core.ChallengeIDString
	ParticipantCount int
	CompletedCount   int
	Leaderboard      []core.ChallengeParticipant
	Participant      *core.ChallengeParticipant
	SequenceNumber   uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r ChallengeProgress) GetSequenceNumber() uint {
	return r.SequenceNumber
}
