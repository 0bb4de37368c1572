package validateredemption

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// Validation represents the query result, Failure is nil if CanRedeem is true.
type Validation struct {
	CanRedeem        bool
	Failure          *core.Failure
	Balance          core.Balance
	RedemptionsToday int
	SequenceNumber   uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r Validation) GetSequenceNumber() uint {
	return r.SequenceNumber
}
