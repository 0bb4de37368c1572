package redeemoffer

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "RedeemOffer"

// Command represents the intent to spend steps on a partner offer.
type Command struct {
	AccountID   core.AccountIDString
	OperationID string
	Offer       core.Offer
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(accountID core.AccountIDString, operationID string, offer core.Offer, occurredAt time.Time) Command {
	return Command{
		AccountID:   accountID,
		OperationID: operationID,
		Offer:       offer,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
