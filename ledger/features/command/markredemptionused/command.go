package markredemptionused

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "MarkRedemptionUsed"

// Command represents the owner presenting a redemption code to the partner.
type Command struct {
	AccountID    core.AccountIDString
	RedemptionID core.RedemptionIDString
	OccurredAt   core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(accountID core.AccountIDString, redemptionID core.RedemptionIDString, occurredAt time.Time) Command {
	return Command{
		AccountID:    accountID,
		RedemptionID: redemptionID,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}
