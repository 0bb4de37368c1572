package validateredemption

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const (
	queryType = "ValidateRedemption"
)

// Query represents the input for validating a spend of StepsRequired at an instant.
type Query struct {
	AccountID     core.AccountIDString
	StepsRequired int
	At            time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(accountID core.AccountIDString, stepsRequired int, at time.Time) Query {
	return Query{
		AccountID:     accountID,
		StepsRequired: stepsRequired,
		At:            at.UTC(),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
