package walletbalance

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const (
	queryType = "WalletBalance"
)

// Query represents the input for reading the wallet of an account at an instant.
type Query struct {
	AccountID core.AccountIDString
	At        time.Time
}

// BuildQuery creates a new Query, at decides the day of the redemption counter.
func BuildQuery(accountID core.AccountIDString, at time.Time) Query {
	return Query{
		AccountID: accountID,
		At:        at.UTC(),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
