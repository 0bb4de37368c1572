package leaguestandings

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

type competitor struct {
	entry      core.LeagueEntry
	daySamples map[core.DateKey]int
}

// Project implements the query logic to rank the accounts of a period.
//
// Query Logic:
//
//	GIVEN: All account openings and recorded step samples
//	WHEN: LeagueStandings query is executed
//	THEN: LeagueStandings is returned, every account ranked within the tier of its lifetime steps
//	INCLUDES: Accounts without steps in the period, ranked with zero period steps
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) LeagueStandings {
	var order []core.AccountIDString
	competitors := make(map[core.AccountIDString]*competitor)

	for _, event := range history {
		switch e := event.(type) {
		case core.AccountOpened:
			if _, found := competitors[e.AccountID]; found {
				continue
			}
			order = append(order, e.AccountID)
			competitors[e.AccountID] = &competitor{
				entry: core.LeagueEntry{
					AccountID:   e.AccountID,
					DisplayName: e.DisplayName,
					Avatar:      e.Avatar,
				},
				daySamples: make(map[core.DateKey]int),
			}

		case core.DailyStepsRecorded:
			c, found := competitors[e.AccountID]
			if !found {
				continue
			}
			c.entry.LifetimeSteps = max(c.entry.LifetimeSteps, e.LifetimeSteps)
			if core.PeriodContains(query.Period, e.Date) {
				c.daySamples[e.Date] = e.Steps
			}
		}
	}

	byTier := make(map[string][]core.LeagueEntry)
	for _, accountID := range order {
		c := competitors[accountID]
		for _, steps := range c.daySamples {
			c.entry.PeriodSteps += steps
		}

		tier := core.ClassifyTier(c.entry.LifetimeSteps)
		byTier[tier.ID] = append(byTier[tier.ID], c.entry)
	}

	result := LeagueStandings{
		Period:         query.Period,
		Participants:   len(order),
		SequenceNumber: maxSequenceNumber,
	}

	for _, tier := range core.Tiers() {
		result.Tiers = append(result.Tiers, TierStandings{
			Tier:      tier,
			Standings: core.RankTier(tier, byTier[tier.ID]),
		})
	}

	return result
}

// BuildEventFilter creates the filter for the openings and step samples of all accounts.
func BuildEventFilter() eventstore.Filter {
	return boundaries.New().AllAccounts().Finalize()
}
