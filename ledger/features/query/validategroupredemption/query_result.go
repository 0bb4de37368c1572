package validategroupredemption

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// Validation represents the query result, Squad carries the live member balances.
type Validation struct {
	CanRedeem          bool
	Failure            *core.Failure
	TotalWalletBalance int
	RequiredBalance    int
	Squad              core.SquadState
	SequenceNumber     uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r Validation) GetSequenceNumber() uint {
	return r.SequenceNumber
}
