package contributesteps

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "ContributeSquadSteps"

// Command represents a member pledging steps to a squad.
type Command struct {
	SquadID    core.SquadIDString
	AccountID  core.AccountIDString
	Steps      int
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(squadID core.SquadIDString, accountID core.AccountIDString, steps int, occurredAt time.Time) Command {
	return Command{
		SquadID:    squadID,
		AccountID:  accountID,
		Steps:      steps,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
