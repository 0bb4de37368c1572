package validategroupredemption

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Project implements the query logic to validate a squad redemption.
//
// Query Logic:
//
//	GIVEN: All events of the squad and the wallet events of its members
//	WHEN: ValidateGroupRedemption query is executed
//	THEN: Validation is returned, checks run in order: host, squad active, members joined,
//	      live wallets cover the target, collected steps reach the target, not redeemed yet
//	NOT FOUND: ErrSquadNotFound
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) (Validation, error) {
	squad, found := core.FindSquad(core.ProjectSquads(history, query.At), query.SquadID)
	if !found {
		return Validation{}, core.ErrSquadNotFound
	}

	live := squad.WithWalletBalances(core.LiveWalletBalances(history, squad))
	validation := core.ValidateGroupRedemption(live, query.AccountID)

	return Validation{
		CanRedeem:          validation.CanRedeem,
		Failure:            validation.Failure,
		TotalWalletBalance: validation.TotalWalletBalance,
		RequiredBalance:    validation.RequiredBalance,
		Squad:              live,
		SequenceNumber:     maxSequenceNumber,
	}, nil
}

// BuildEventFilter creates the filter for the squad and the wallets of the members.
func BuildEventFilter(squadID core.SquadIDString, memberIDs []core.AccountIDString) eventstore.Filter {
	return boundaries.New().Squads(squadID).Accounts(memberIDs...).Finalize()
}
