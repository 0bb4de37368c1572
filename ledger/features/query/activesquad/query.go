package activesquad

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const (
	queryType = "ActiveSquad"
)

// Query represents the input for reading the squad of an account, at decides passive expiry.
type Query struct {
	AccountID core.AccountIDString
	At        time.Time
}

// BuildQuery creates a new Query with the provided parameters.
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
