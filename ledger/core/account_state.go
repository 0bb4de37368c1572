package core

import (
	"time"
)

// DailyRedemptionLimit is the maximum number of single user redemptions per UTC day.
const DailyRedemptionLimit = 10

type RedemptionStatus = string

const (
	RedemptionStatusActive  RedemptionStatus = "active"
	RedemptionStatusUsed    RedemptionStatus = "used"
	RedemptionStatusExpired RedemptionStatus = "expired"
)

type RedemptionType = string

const (
	RedemptionTypeSingle RedemptionType = "single"
	RedemptionTypeSquad  RedemptionType = "squad"
)

// Offer is a partner reward that can be bought with steps.
type Offer struct {
	OfferID       string
	PartnerID     string
	Title         string
	StepsRequired int
}

// Redemption is the immutable record of a spend, only its status changes.
type Redemption struct {
	ID          RedemptionIDString
	AccountID   AccountIDString
	OperationID string
	OfferID     string
	PartnerID   string
	OfferTitle  string
	Code        string
	StepsSpent  int
	Status      RedemptionStatus
	Type        RedemptionType
	SquadID     SquadIDString
	MemberIDs   []AccountIDString
	CreatedAt   time.Time
	ExpiresAt   time.Time
	UsedAt      time.Time
}

// StatusAt returns the status with passive expiry applied.
func (r Redemption) StatusAt(now time.Time) RedemptionStatus {
	if r.Status == RedemptionStatusActive && !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt) {
		return RedemptionStatusExpired
	}

	return r.Status
}

// AccountState is the wallet of one account projected from its events.
type AccountState struct {
	ID                 AccountIDString
	Exists             bool
	DisplayName        string
	Avatar             string
	LifetimeSteps      int
	SpentSteps         int
	DailyRedemptions   int
	LastRedemptionDate DateKey
	StepHistory        StepHistory
	Redemptions        []Redemption
}

// ProjectAccount folds the account events, events of other accounts are ignored.
func ProjectAccount(accountID AccountIDString, events DomainEvents) AccountState {
	state := AccountState{ID: accountID}

	for _, event := range events {
		switch e := event.(type) {
		case AccountOpened:
			if e.AccountID != accountID {
				continue
			}
			state.Exists = true
			state.DisplayName = e.DisplayName
			state.Avatar = e.Avatar

		case DailyStepsRecorded:
			if e.AccountID != accountID {
				continue
			}
			state.StepHistory = MergeStepEntry(
				state.StepHistory,
				StepEntry{Date: e.Date, Steps: e.Steps, GoalReached: e.GoalReached},
			)
			state.LifetimeSteps = max(state.LifetimeSteps, e.LifetimeSteps)

		case OfferRedeemed:
			if e.AccountID != accountID {
				continue
			}
			state.SpentSteps += e.StepsSpent
			if e.RedemptionDate == state.LastRedemptionDate {
				state.DailyRedemptions++
			} else {
				state.LastRedemptionDate = e.RedemptionDate
				state.DailyRedemptions = 1
			}
			state.Redemptions = append(state.Redemptions, redemptionFromOfferRedeemed(e))

		case SquadRewardDebited:
			if e.AccountID != accountID {
				continue
			}
			state.SpentSteps += e.Steps

		case RedemptionCodeUsed:
			if e.AccountID != accountID {
				continue
			}
			for i := range state.Redemptions {
				if state.Redemptions[i].ID == e.RedemptionID {
					state.Redemptions[i].Status = RedemptionStatusUsed
					state.Redemptions[i].UsedAt = e.OccurredAt
				}
			}
		}
	}

	return state
}

func (s AccountState) Balance() Balance {
	return CalculateBalance(s.LifetimeSteps, s.SpentSteps)
}

// RedemptionsOn returns the daily counter, it resets when the day changes.
func (s AccountState) RedemptionsOn(today DateKey) int {
	if s.LastRedemptionDate != today {
		return 0
	}

	return s.DailyRedemptions
}

// RedemptionByOperation finds the redemption created by a client operation id.
func (s AccountState) RedemptionByOperation(operationID string) (Redemption, bool) {
	if operationID == "" {
		return Redemption{}, false
	}

	for _, r := range s.Redemptions {
		if r.OperationID == operationID {
			return r, true
		}
	}

	return Redemption{}, false
}

// RedemptionValidation is the advisory answer to "can this account spend stepsRequired now".
type RedemptionValidation struct {
	CanRedeem bool
	Failure   *Failure
	Balance   Balance
}

// ValidateRedemption checks existence, the balance and the daily limit, in this order.
func ValidateRedemption(account AccountState, stepsRequired int, today DateKey) RedemptionValidation {
	balance := account.Balance()

	reject := func(failure Failure) RedemptionValidation {
		return RedemptionValidation{Failure: &failure, Balance: balance}
	}

	if !account.Exists {
		return reject(BuildFailure(FailureUserNotFound, ReasonUserNotFound))
	}

	if stepsRequired <= 0 {
		return reject(BuildFailure(FailureInvalidAmount, ReasonStepsMustBePositive))
	}

	if !balance.Covers(stepsRequired) {
		return reject(BuildFailure(FailureInsufficientBalance, InsufficientBalanceReason(stepsRequired, balance.Available)))
	}

	if account.RedemptionsOn(today) >= DailyRedemptionLimit {
		return reject(BuildFailure(FailureDailyLimitExceeded, ReasonDailyLimitReached))
	}

	return RedemptionValidation{CanRedeem: true, Balance: balance}
}

func redemptionFromOfferRedeemed(e OfferRedeemed) Redemption {
	return Redemption{
		ID:          e.RedemptionID,
		AccountID:   e.AccountID,
		OperationID: e.OperationID,
		OfferID:     e.OfferID,
		PartnerID:   e.PartnerID,
		OfferTitle:  e.OfferTitle,
		Code:        e.RedemptionCode,
		StepsSpent:  e.StepsSpent,
		Status:      RedemptionStatusActive,
		Type:        RedemptionTypeSingle,
		CreatedAt:   e.OccurredAt,
		ExpiresAt:   e.ExpiresAt,
	}
}

func redemptionFromSquadRewardRedeemed(e SquadRewardRedeemed) Redemption {
	return Redemption{
		ID:         e.RedemptionID,
		AccountID:  e.HostID,
		OfferID:    e.OfferID,
		PartnerID:  e.PartnerID,
		OfferTitle: e.OfferTitle,
		Code:       e.RedemptionCode,
		StepsSpent: e.StepsSpent,
		Status:     RedemptionStatusActive,
		Type:       RedemptionTypeSquad,
		SquadID:    e.SquadID,
		MemberIDs:  append([]AccountIDString(nil), e.MemberIDs...),
		CreatedAt:  e.OccurredAt,
	}
}

// ProjectRedemptions folds single and squad redemption records in creation order and applies usage.
func ProjectRedemptions(events DomainEvents) []Redemption {
	var redemptions []Redemption
	index := make(map[RedemptionIDString]int)

	for _, event := range events {
		switch e := event.(type) {
		case OfferRedeemed:
			index[e.RedemptionID] = len(redemptions)
			redemptions = append(redemptions, redemptionFromOfferRedeemed(e))

		case SquadRewardRedeemed:
			index[e.RedemptionID] = len(redemptions)
			redemptions = append(redemptions, redemptionFromSquadRewardRedeemed(e))

		case RedemptionCodeUsed:
			if i, found := index[e.RedemptionID]; found {
				redemptions[i].Status = RedemptionStatusUsed
				redemptions[i].UsedAt = e.OccurredAt
			}
		}
	}

	return redemptions
}

// IsRedemptionCodeTaken returns true if any redemption in events carries the code.
func IsRedemptionCodeTaken(code string, events DomainEvents) bool {
	for _, event := range events {
		switch e := event.(type) {
		case OfferRedeemed:
			if e.RedemptionCode == code {
				return true
			}
		case SquadRewardRedeemed:
			if e.RedemptionCode == code {
				return true
			}
		}
	}

	return false
}
