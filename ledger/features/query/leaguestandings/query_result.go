package leaguestandings

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// TierStandings are the ranked entries of one tier.
type TierStandings struct {
	Tier      core.Tier
	Standings []core.Standing
}

// LeagueStandings represents the query result, Tiers holds every tier in ascending order, empty ones included.
type LeagueStandings struct {
	Period         string
	Tiers          []TierStandings
	Participants   int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r LeagueStandings) GetSequenceNumber() uint {
	return r.SequenceNumber
}
