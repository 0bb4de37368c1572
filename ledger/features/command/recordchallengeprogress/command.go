package recordchallengeprogress

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "RecordChallengeProgress"

// Command represents the current progress of an account in a challenge, in the unit of the goal.
type Command struct {
	ChallengeID core.ChallengeIDString
	AccountID   core.AccountIDString
	Progress    int
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	challengeID core.ChallengeIDString,
	accountID core.AccountIDString,
	progress int,
	occurredAt time.Time,
) Command {

	return Command{
		ChallengeID: challengeID,
		AccountID:   accountID,
		Progress:    progress,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
