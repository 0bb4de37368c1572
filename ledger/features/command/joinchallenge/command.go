package joinchallenge

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "JoinChallenge"

// Command represents an account joining a challenge.
type Command struct {
	AccountID  core.AccountIDString
	Challenge  core.Challenge
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(accountID core.AccountIDString, challenge core.Challenge, occurredAt time.Time) Command {
	return Command{
		AccountID:  accountID,
		Challenge:  challenge,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
