package listredemptions

import (
	"slices"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Project implements the query logic to list the redemptions of an account.
//
// Query Logic:
//
//	GIVEN: The wallet events of the account, its squads and the squad redemptions
//	WHEN: ListRedemptions query is executed
//	THEN: Redemptions is returned, newest first, with the status projected at At
//	INCLUDES: Single redemptions owned by the account, squad redemptions listing the account as member
//	EXCLUDES: Redemptions of other accounts
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) Redemptions {
	redemptions := make([]core.Redemption, 0)

	for _, redemption := range core.ProjectRedemptions(history) {
		if !isListedFor(redemption, query.AccountID) {
			continue
		}

		redemption.Status = redemption.StatusAt(query.At)
		redemptions = append(redemptions, redemption)
	}

	slices.SortStableFunc(redemptions, func(a, b core.Redemption) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return Redemptions{
		Redemptions:    redemptions,
		Count:          len(redemptions),
		SequenceNumber: maxSequenceNumber,
	}
}

func isListedFor(redemption core.Redemption, accountID core.AccountIDString) bool {
	if redemption.Type == core.RedemptionTypeSquad {
		return slices.Contains(redemption.MemberIDs, accountID)
	}

	return redemption.AccountID == accountID
}

// SquadRedemptionIDs returns the redemptions of the squads in events which list the account as member.
func SquadRedemptionIDs(events core.DomainEvents, accountID core.AccountIDString) []core.RedemptionIDString {
	var redemptionIDs []core.RedemptionIDString

	for _, event := range events {
		if e, ok := event.(core.SquadRewardRedeemed); ok && slices.Contains(e.MemberIDs, accountID) {
			redemptionIDs = append(redemptionIDs, e.RedemptionID)
		}
	}

	return redemptionIDs
}

// BuildEventFilter creates the filter for the final phase: the wallet events of the account,
// its squads and the records and usage of the given squad redemptions.
func BuildEventFilter(
	accountID core.AccountIDString,
	squadIDs []core.SquadIDString,
	squadRedemptionIDs []core.RedemptionIDString,
) eventstore.Filter {

	boundary := boundaries.New().Accounts(accountID).Squads(squadIDs...)
	for _, redemptionID := range squadRedemptionIDs {
		boundary = boundary.Redemption(redemptionID)
	}

	return boundary.Finalize()
}
