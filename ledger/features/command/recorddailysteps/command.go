package recorddailysteps

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "RecordDailySteps"

// Command represents a device sample of today's steps. A DailyGoal of zero uses the handler's goal.
type Command struct {
	AccountID  core.AccountIDString
	Steps      int
	DailyGoal  int
	Force      bool
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	accountID core.AccountIDString,
	steps int,
	dailyGoal int,
	force bool,
	occurredAt time.Time,
) Command {

	return Command{
		AccountID:  accountID,
		Steps:      steps,
		DailyGoal:  dailyGoal,
		Force:      force,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
