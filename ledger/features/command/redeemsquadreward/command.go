package redeemsquadreward

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "RedeemSquadReward"

// Command represents the host redeeming the squad reward.
type Command struct {
	SquadID    core.SquadIDString
	AccountID  core.AccountIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(squadID core.SquadIDString, accountID core.AccountIDString, occurredAt time.Time) Command {
	return Command{
		SquadID:    squadID,
		AccountID:  accountID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
