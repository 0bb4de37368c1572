package listredemptions

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const (
	queryType = "ListRedemptions"
)

// Query represents the input for listing the redemptions of an account.
type Query struct {
	AccountID core.AccountIDString
	At        time.Time
}

// BuildQuery creates a new Query, at decides passive expiry.
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
