package registeraccount

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "RegisterAccount"

// Command represents the intent to open a wallet for a new user.
type Command struct {
	AccountID   core.AccountIDString
	DisplayName string
	Avatar      string
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(accountID core.AccountIDString, displayName string, avatar string, occurredAt time.Time) Command {
	return Command{
		AccountID:   accountID,
		DisplayName: displayName,
		Avatar:      avatar,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
