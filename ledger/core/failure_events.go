package core

import (
	"time"
)

const (
	RedeemingOfferFailedEventType           = "RedeemingOfferFailed"
	MarkingRedemptionUsedFailedEventType    = "MarkingRedemptionUsedFailed"
	CreatingSquadFailedEventType            = "CreatingSquadFailed"
	AcceptingSquadInvitationFailedEventType = "AcceptingSquadInvitationFailed"
	DecliningSquadInvitationFailedEventType = "DecliningSquadInvitationFailed"
	CancelingSquadFailedEventType           = "CancelingSquadFailed"
	ContributingSquadStepsFailedEventType   = "ContributingSquadStepsFailed"
	RedeemingSquadRewardFailedEventType     = "RedeemingSquadRewardFailed"
)

// RedeemingOfferFailed records a rejected single user redemption.
type RedeemingOfferFailed struct {
	AccountID   AccountIDString
	OperationID string
	OfferID     string
	StepsNeeded int
	FailureCode FailureCode
	FailureInfo string
	OccurredAt  OccurredAt
}

func BuildRedeemingOfferFailed(
	accountID AccountIDString,
	operationID string,
	offer Offer,
	failure Failure,
	occurredAt time.Time,
) RedeemingOfferFailed {

	return RedeemingOfferFailed{
		AccountID:   accountID,
		OperationID: operationID,
		OfferID:     offer.OfferID,
		StepsNeeded: offer.StepsRequired,
		FailureCode: failure.Code,
		FailureInfo: failure.Message,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e RedeemingOfferFailed) EventType() string        { return RedeemingOfferFailedEventType }
func (e RedeemingOfferFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e RedeemingOfferFailed) IsErrorEvent() bool       { return true }

// MarkingRedemptionUsedFailed records a rejected attempt to use a redemption code.
type MarkingRedemptionUsedFailed struct {
	AccountID    AccountIDString
	RedemptionID RedemptionIDString
	FailureCode  FailureCode
	FailureInfo  string
	OccurredAt   OccurredAt
}

func BuildMarkingRedemptionUsedFailed(
	accountID AccountIDString,
	redemptionID RedemptionIDString,
	failure Failure,
	occurredAt time.Time,
) MarkingRedemptionUsedFailed {

	return MarkingRedemptionUsedFailed{
		AccountID:    accountID,
		RedemptionID: redemptionID,
		FailureCode:  failure.Code,
		FailureInfo:  failure.Message,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

func (e MarkingRedemptionUsedFailed) EventType() string        { return MarkingRedemptionUsedFailedEventType }
func (e MarkingRedemptionUsedFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e MarkingRedemptionUsedFailed) IsErrorEvent() bool       { return true }

// SquadOperationFailed records a rejected squad command. The event type is one of the squad failure
// event types, so that every squad command has its own audit stream.
type SquadOperationFailed struct {
	SquadID          SquadIDString
	AccountID        AccountIDString
	FailureCode      FailureCode
	FailureInfo      string
	OccurredAt       OccurredAt
	DynamicEventType string
}

func BuildSquadOperationFailed(
	eventType string,
	squadID SquadIDString,
	accountID AccountIDString,
	failure Failure,
	occurredAt time.Time,
) SquadOperationFailed {

	return SquadOperationFailed{
		SquadID:          squadID,
		AccountID:        accountID,
		FailureCode:      failure.Code,
		FailureInfo:      failure.Message,
		OccurredAt:       ToOccurredAt(occurredAt),
		DynamicEventType: eventType,
	}
}

func (e SquadOperationFailed) EventType() string        { return e.DynamicEventType }
func (e SquadOperationFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadOperationFailed) IsErrorEvent() bool       { return true }

// IsSquadFailureEventType returns true for the event types that are decoded into SquadOperationFailed.
func IsSquadFailureEventType(eventType string) bool {
	switch eventType {
	case CreatingSquadFailedEventType,
		AcceptingSquadInvitationFailedEventType,
		DecliningSquadInvitationFailedEventType,
		CancelingSquadFailedEventType,
		ContributingSquadStepsFailedEventType,
		RedeemingSquadRewardFailedEventType:
		return true
	default:
		return false
	}
}
