package friendlist

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const (
	queryType = "FriendList"
)

// Query represents the input for reading the friends of an account.
type Query struct {
	AccountID core.AccountIDString
}

func BuildQuery(accountID core.AccountIDString) Query {
	return Query{AccountID: accountID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
