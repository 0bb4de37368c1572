package activesquad

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// ActiveSquad represents the query result, Squad is only set if Found is true.
// Joined is false while the account's invitation is still open.
type ActiveSquad struct {
	Found          bool
	Joined         bool
	Squad          core.SquadState
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r ActiveSquad) GetSequenceNumber() uint {
	return r.SequenceNumber
}
