package redeemoffer

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Mint is the identity of the redemption created on success. A zero ExpiresAt never expires.
type Mint struct {
	RedemptionID core.RedemptionIDString
	Code         string
	ExpiresAt    time.Time
}

// Decide implements the business logic to determine whether an offer is redeemed.
//
// Business Rules:
//
//	GIVEN: An account and an offer
//	WHEN: RedeemOffer command is received
//	THEN: OfferRedeemed event is generated, debiting StepsRequired and carrying the minted code
//	NOT FOUND: ErrAccountNotFound if the account is not open
//	ERROR: InvalidAmount if the offer requires no steps
//	ERROR: InsufficientBalance if the available steps do not cover the offer
//	ERROR: DailyLimitExceeded if the account already redeemed 10 offers today (UTC)
//	IDEMPOTENCY: If the operation id was already applied, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command, mint Mint) core.DecisionResult {
	account := core.ProjectAccount(command.AccountID, history)
	if !account.Exists {
		return core.NotFoundDecision(core.ErrAccountNotFound)
	}

	if _, applied := account.RedemptionByOperation(command.OperationID); applied {
		return core.IdempotentDecision()
	}

	validation := core.ValidateRedemption(account, command.Offer.StepsRequired, core.ToDateKey(command.OccurredAt))
	if !validation.CanRedeem {
		return core.ErrorDecision(
			core.BuildRedeemingOfferFailed(
				command.AccountID,
				command.OperationID,
				command.Offer,
				*validation.Failure,
				command.OccurredAt,
			),
			*validation.Failure,
		)
	}

	return core.SuccessDecision(
		core.BuildOfferRedeemed(
			command.AccountID,
			mint.RedemptionID,
			command.OperationID,
			command.Offer,
			mint.Code,
			mint.ExpiresAt,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for the wallet of the account and the redemptions using the code.
func BuildEventFilter(accountID core.AccountIDString, code string) eventstore.Filter {
	return boundaries.New().Accounts(accountID).RedemptionCode(code).Finalize()
}
