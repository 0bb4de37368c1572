package challengeprogress

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

const (
	queryType = "ChallengeProgress"
)

// Query represents the input for reading a challenge at an instant, AccountID is optional.
type Query struct {
	ChallengeID core.ChallengeIDString
	AccountID   core.AccountIDString
	At          time.Time
}

// BuildQuery creates a new Query, at decides which unfinished participants count as failed.
func BuildQuery(challengeID core.ChallengeIDString, accountID core.AccountIDString, at time.Time) Query {
	return Query{
		ChallengeID: challengeID,
		AccountID:   accountID,
		At:          at.UTC(),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
