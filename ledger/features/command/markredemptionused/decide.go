package markredemptionused

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether a redemption is marked as used.
//
// Business Rules:
//
//	GIVEN: A redemption owned by the account
//	WHEN: MarkRedemptionUsed command is received
//	THEN: RedemptionCodeUsed event is generated
//	NOT FOUND: ErrRedemptionNotFound if the redemption does not exist or belongs to another account
//	ERROR: RedemptionNotActive if the redemption was already used or has expired
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	redemption, found := project(history, command.RedemptionID)
	if !found || redemption.AccountID != command.AccountID {
		return core.NotFoundDecision(core.ErrRedemptionNotFound)
	}

	switch redemption.StatusAt(command.OccurredAt) {
	case core.RedemptionStatusUsed:
		return reject(command, core.ReasonRedemptionAlreadyUsed)
	case core.RedemptionStatusExpired:
		return reject(command, core.ReasonRedemptionExpired)
	}

	return core.SuccessDecision(
		core.BuildRedemptionCodeUsed(redemption.AccountID, redemption.ID, redemption.Code, command.OccurredAt),
	)
}

func reject(command Command, reason string) core.DecisionResult {
	failure := core.BuildFailure(core.FailureRedemptionNotActive, reason)

	return core.ErrorDecision(
		core.BuildMarkingRedemptionUsedFailed(command.AccountID, command.RedemptionID, failure, command.OccurredAt),
		failure,
	)
}

func project(history core.DomainEvents, redemptionID core.RedemptionIDString) (core.Redemption, bool) {
	for _, redemption := range core.ProjectRedemptions(history) {
		if redemption.ID == redemptionID {
			return redemption, true
		}
	}

	return core.Redemption{}, false
}

// BuildEventFilter creates the filter for the record and the usage of the redemption.
func BuildEventFilter(redemptionID core.RedemptionIDString) eventstore.Filter {
	return boundaries.New().Redemption(redemptionID).Finalize()
}
