package redeemsquadreward

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Mint is the identity of the squad redemption created on success.
type Mint struct {
	RedemptionID core.RedemptionIDString
	Code         string
}

// Decide implements the business logic to determine whether the squad reward is redeemed.
//
// Business Rules:
//
//	GIVEN: A squad and the live wallets of its members
//	WHEN: RedeemSquadReward command is received
//	THEN: SquadRewardRedeemed event and one SquadRewardDebited event per paying member are generated
//	NOT FOUND: ErrSquadNotFound
//	ERROR: NotSquadHost if the account is not the host
//	ERROR: SquadNotActive if the squad is pending, cancelled or expired
//	ERROR: MembersPending if members did not join yet
//	ERROR: InsufficientSquadBalance if the live wallets do not cover the target
//	ERROR: SquadStepsIncomplete if the pledged steps do not reach the target
//	IDEMPOTENCY: If the host already redeemed the squad, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command, mint Mint) core.DecisionResult {
	squad, found := core.FindSquad(core.ProjectSquads(history, command.OccurredAt), command.SquadID)
	if !found {
		return core.NotFoundDecision(core.ErrSquadNotFound)
	}

	if squad.Status == core.SquadStatusCompleted && squad.HostID == command.AccountID {
		return core.IdempotentDecision()
	}

	balances := core.LiveWalletBalances(history, squad)
	live := squad.WithWalletBalances(balances)

	validation := core.ValidateGroupRedemption(live, command.AccountID)
	if !validation.CanRedeem {
		return core.ErrorDecision(
			core.BuildSquadOperationFailed(
				core.RedeemingSquadRewardFailedEventType,
				command.SquadID,
				command.AccountID,
				*validation.Failure,
				command.OccurredAt,
			),
			*validation.Failure,
		)
	}

	events := core.DomainEvents{
		core.BuildSquadRewardRedeemed(live, mint.RedemptionID, mint.Code, command.OccurredAt),
	}

	for _, debit := range core.AllocateSquadDebits(live, balances) {
		events = append(events, core.BuildSquadRewardDebited(
			squad.ID,
			debit.AccountID,
			mint.RedemptionID,
			debit.Steps,
			command.OccurredAt,
		))
	}

	return core.SuccessDecision(events...)
}

// BuildSquadFilter creates the filter of the first phase, which finds the members.
func BuildSquadFilter(squadID core.SquadIDString) eventstore.Filter {
	return boundaries.New().Squads(squadID).Finalize()
}

// BuildEventFilter creates the filter for the squad, the wallets of the members and the redemptions using the code.
func BuildEventFilter(squadID core.SquadIDString, memberIDs []core.AccountIDString, code string) eventstore.Filter {
	return boundaries.New().Squads(squadID).Accounts(memberIDs...).RedemptionCode(code).Finalize()
}
