package validategroupredemption

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const (
	queryType = "ValidateGroupRedemption"
)

// Query represents the input for validating a squad redemption requested by AccountID.
type Query struct {
	SquadID   core.SquadIDString
	AccountID core.AccountIDString
	At        time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(squadID core.SquadIDString, accountID core.AccountIDString, at time.Time) Query {
	return Query{
		SquadID:   squadID,
		AccountID: accountID,
		At:        at.UTC(),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
