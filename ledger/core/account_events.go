package core

import (
	"time"
)

const (
	AccountOpenedEventType      = "AccountOpened"
	DailyStepsRecordedEventType = "DailyStepsRecorded"
	OfferRedeemedEventType      = "OfferRedeemed"
	RedemptionCodeUsedEventType = "RedemptionCodeUsed"
)

// AccountOpened represents the signup of a user.
type AccountOpened struct {
	AccountID   AccountIDString
	DisplayName string
	Avatar      string
	OccurredAt  OccurredAt
}

func BuildAccountOpened(accountID AccountIDString, displayName string, avatar string, occurredAt time.Time) AccountOpened {
	return AccountOpened{
		AccountID:   accountID,
		DisplayName: displayName,
		Avatar:      avatar,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e AccountOpened) EventType() string        { return AccountOpenedEventType }
func (e AccountOpened) HasOccurredAt() time.Time { return e.OccurredAt }
func (e AccountOpened) IsErrorEvent() bool       { return false }

// DailyStepsRecorded represents a persisted step sample of one day.
// LifetimeSteps is the stored lifetime total after reconciling the sample, it never decreases.
type DailyStepsRecorded struct {
	AccountID     AccountIDString
	Date          DateKey
	Steps         int
	GoalReached   bool
	LifetimeSteps int
	OccurredAt    OccurredAt
}

func BuildDailyStepsRecorded(
	accountID AccountIDString,
	entry StepEntry,
	lifetimeSteps int,
	occurredAt time.Time,
) DailyStepsRecorded {

	return DailyStepsRecorded{
		AccountID:     accountID,
		Date:          entry.Date,
		Steps:         entry.Steps,
		GoalReached:   entry.GoalReached,
		LifetimeSteps: lifetimeSteps,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e DailyStepsRecorded) EventType() string        { return DailyStepsRecordedEventType }
func (e DailyStepsRecorded) HasOccurredAt() time.Time { return e.OccurredAt }
func (e DailyStepsRecorded) IsErrorEvent() bool       { return false }

// OfferRedeemed represents a single user redemption: the debit of StepsSpent and the minted code in one fact.
// OperationID is the client's idempotency key.
type OfferRedeemed struct {
	AccountID      AccountIDString
	RedemptionID   RedemptionIDString
	OperationID    string
	OfferID        string
	PartnerID      string
	OfferTitle     string
	RedemptionCode string
	StepsSpent     int
	RedemptionDate DateKey
	ExpiresAt      time.Time
	OccurredAt     OccurredAt
}

func BuildOfferRedeemed(
	accountID AccountIDString,
	redemptionID RedemptionIDString,
	operationID string,
	offer Offer,
	redemptionCode string,
	expiresAt time.Time,
	occurredAt time.Time,
) OfferRedeemed {

	if !expiresAt.IsZero() {
		expiresAt = ToOccurredAt(expiresAt)
	}

	return OfferRedeemed{
		AccountID:      accountID,
		RedemptionID:   redemptionID,
		OperationID:    operationID,
		OfferID:        offer.OfferID,
		PartnerID:      offer.PartnerID,
		OfferTitle:     offer.Title,
		RedemptionCode: redemptionCode,
		StepsSpent:     offer.StepsRequired,
		RedemptionDate: ToDateKey(occurredAt),
		ExpiresAt:      expiresAt,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e OfferRedeemed) EventType() string        { return OfferRedeemedEventType }
func (e OfferRedeemed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e OfferRedeemed) IsErrorEvent() bool       { return false }

// RedemptionCodeUsed represents a partner accepting a redemption code, AccountID is the owner of the redemption.
type RedemptionCodeUsed struct {
	AccountID      AccountIDString
	RedemptionID   RedemptionIDString
	RedemptionCode string
	OccurredAt     OccurredAt
}

func BuildRedemptionCodeUsed(
	accountID AccountIDString,
	redemptionID RedemptionIDString,
	redemptionCode string,
	occurredAt time.Time,
) RedemptionCodeUsed {

	return RedemptionCodeUsed{
		AccountID:      accountID,
		RedemptionID:   redemptionID,
		RedemptionCode: redemptionCode,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e RedemptionCodeUsed) EventType() string        { return RedemptionCodeUsedEventType }
func (e RedemptionCodeUsed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e RedemptionCodeUsed) IsErrorEvent() bool       { return false }
