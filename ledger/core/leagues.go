package core

import (
	"math"
	"sort"
	"strings"
	"time"
)

// TierRosterSize is the assumed number of members per tier for the demotion boundary.
const TierRosterSize = 50

const leaguePeriodLayout = "2006-01"

// Tier is a league bracket covering lifetime steps in [MinSteps, MaxSteps).
type Tier struct {
	ID             string
	Name           string
	MinSteps       int
	MaxSteps       int
	PromotionCount int
	DemotionCount  int
}

var leagueTiers = []Tier{
	{ID: "bronze", Name: "Bronze", MinSteps: 0, MaxSteps: 50000, PromotionCount: 10, DemotionCount: 0},
	{ID: "silver", Name: "Silver", MinSteps: 50000, MaxSteps: 150000, PromotionCount: 10, DemotionCount: 10},
	{ID: "gold", Name: "Gold", MinSteps: 150000, MaxSteps: 300000, PromotionCount: 10, DemotionCount: 10},
	{ID: "platinum", Name: "Platinum", MinSteps: 300000, MaxSteps: 500000, PromotionCount: 10, DemotionCount: 10},
	{ID: "champion", Name: "Champion", MinSteps: 500000, MaxSteps: math.MaxInt, PromotionCount: 0, DemotionCount: 10},
}

// Tiers returns the league tiers in ascending order.
func Tiers() []Tier {
	return append([]Tier(nil), leagueTiers...)
}

func (t Tier) Contains(lifetimeSteps int) bool {
	return lifetimeSteps >= t.MinSteps && lifetimeSteps < t.MaxSteps
}

// ClassifyTier returns the tier containing lifetimeSteps, or the lowest tier if none does.
func ClassifyTier(lifetimeSteps int) Tier {
	for _, tier := range leagueTiers {
		if tier.Contains(lifetimeSteps) {
			return tier
		}
	}

	return leagueTiers[0]
}

// LeagueEntry is one account competing in a period.
type LeagueEntry struct {
	AccountID     AccountIDString
	DisplayName   string
	Avatar        string
	LifetimeSteps int
	PeriodSteps   int
}

// Standing is the ranked position of an entry within its tier.
type Standing struct {
	LeagueEntry
	Rank     int
	Promoted bool
	Demoted  bool
}

// RankTier ranks entries by period steps, descending, ties are broken by account id.
func RankTier(tier Tier, entries []LeagueEntry) []Standing {
	sorted := append([]LeagueEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PeriodSteps != sorted[j].PeriodSteps {
			return sorted[i].PeriodSteps > sorted[j].PeriodSteps
		}

		return sorted[i].AccountID < sorted[j].AccountID
	})

	standings := make([]Standing, 0, len(sorted))
	for i, entry := range sorted {
		rank := i + 1
		standings = append(standings, Standing{
			LeagueEntry: entry,
			Rank:        rank,
			Promoted:    rank <= tier.PromotionCount,
			Demoted:     tier.DemotionCount > 0 && rank > TierRosterSize-tier.DemotionCount,
		})
	}

	return standings
}

// ToLeaguePeriod returns the monthly competitive period of t, formatted YYYY-MM.
func ToLeaguePeriod(t time.Time) string {
	return t.UTC().Format(leaguePeriodLayout)
}

// IsValidLeaguePeriod returns true if period is formatted YYYY-MM.
func IsValidLeaguePeriod(period string) bool {
	_, err := time.Parse(leaguePeriodLayout, period)

	return err == nil
}

// PeriodContains returns true if the day lies in the given YYYY-MM period.
func PeriodContains(period string, date DateKey) bool {
	return strings.HasPrefix(date, period+"-")
}
