package friendlist

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// FriendView is one friend with the display data of its registration.
type FriendView struct {
	AccountID   core.AccountIDString
	DisplayName string
	Avatar      string
	Since       time.Time
}

// FriendList represents the query result for one account.
type FriendList struct {
	AccountID      core.AccountIDString
	Friends        []FriendView
	FriendCount    int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r FriendList) GetSequenceNumber() uint {
	return r.SequenceNumber
}
