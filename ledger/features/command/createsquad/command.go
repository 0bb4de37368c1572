package createsquad

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const commandType = "CreateSquad"

// Command represents the intent of a host to pool steps with invited friends.
type Command struct {
	SquadID    core.SquadIDString
	HostID     core.AccountIDString
	Offer      core.SquadOffer
	InviteeIDs []core.AccountIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	squadID core.SquadIDString,
	hostID core.AccountIDString,
	offer core.SquadOffer,
	inviteeIDs []core.AccountIDString,
	occurredAt time.Time,
) Command {

	return Command{
		SquadID:    squadID,
		HostID:     hostID,
		Offer:      offer,
		InviteeIDs: inviteeIDs,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
