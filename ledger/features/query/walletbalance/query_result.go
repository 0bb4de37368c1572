package walletbalance

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// Wallet represents the query result for one account.
type Wallet struct {
	AccountID            core.AccountIDString
	DisplayName          string
	Avatar               string
	Balance              core.Balance
	Tier                 core.Tier
	RedemptionsToday     int
	RemainingRedemptions int
	StepHistory          core.StepHistory
	SequenceNumber       uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r Wallet) GetSequenceNumber() uint {
	return r.SequenceNumber
}
