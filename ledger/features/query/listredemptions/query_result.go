package listredemptions

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// Redemptions represents the query result, Count is the number of listed redemptions.
type Redemptions struct {
	Redemptions    []core.Redemption
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r Redemptions) GetSequenceNumber() uint {
	return r.SequenceNumber
}
