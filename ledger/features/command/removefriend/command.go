package removefriend

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "RemoveFriend"

// Command represents an account removing a friend.
type Command struct {
	AccountID  core.AccountIDString
	FriendID   core.AccountIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(accountID core.AccountIDString, friendID core.AccountIDString, occurredAt time.Time) Command {
	return Command{
		AccountID:  accountID,
		FriendID:   friendID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
