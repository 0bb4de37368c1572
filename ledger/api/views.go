package api

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

type balanceView struct {
	Earned    int `json:"earned"`
	Spent     int `json:"spent"`
	Available int `json:"available"`
}

func toBalanceView(b core.Balance) balanceView {
	return balanceView{Earned: b.Earned, Spent: b.Spent, Available: b.Available}
}

type stepEntryView struct {
	Date        string `json:"date"`
	Steps       int    `json:"steps"`
	GoalReached bool   `json:"goalReached"`
}

func toStepEntryViews(history core.StepHistory) []stepEntryView {
	views := make([]stepEntryView, 0, len(history))
	for _, e := range history {
		views = append(views, stepEntryView{Date: e.Date, Steps: e.Steps, GoalReached: e.GoalReached})
	}

	return views
}

type tierView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MinSteps int    `json:"minSteps"`
	MaxSteps int    `json:"maxSteps"`
}

func toTierView(t core.Tier) tierView {
	return tierView{ID: t.ID, Name: t.Name, MinSteps: t.MinSteps, MaxSteps: t.MaxSteps}
}

type accountView struct {
	AccountID     string      `json:"accountId"`
	DisplayName   string      `json:"displayName"`
	Avatar        string      `json:"avatar,omitempty"`
	LifetimeSteps int         `json:"lifetimeSteps"`
	Balance       balanceView `json:"balance"`
}

func toAccountView(a core.AccountState) accountView {
	return accountView{
		AccountID:     a.ID,
		DisplayName:   a.DisplayName,
		Avatar:        a.Avatar,
		LifetimeSteps: a.LifetimeSteps,
		Balance:       toBalanceView(a.Balance()),
	}
}

type redemptionView struct {
	RedemptionID string     `json:"redemptionId"`
	AccountID    string     `json:"accountId"`
	OfferID      string     `json:"offerId"`
	PartnerID    string     `json:"partnerId"`
	OfferTitle   string     `json:"offerTitle"`
	Code         string     `json:"code"`
	StepsSpent   int        `json:"stepsSpent"`
	Status       string     `json:"status"`
	Type         string     `json:"type"`
	SquadID      string     `json:"squadId,omitempty"`
	MemberIDs    []string   `json:"memberIds,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	UsedAt       *time.Time `json:"usedAt,omitempty"`
}

func toRedemptionView(r core.Redemption, now time.Time) redemptionView {
	return redemptionView{
		RedemptionID: r.ID,
		AccountID:    r.AccountID,
		OfferID:      r.OfferID,
		PartnerID:    r.PartnerID,
		OfferTitle:   r.OfferTitle,
		Code:         r.Code,
		StepsSpent:   r.StepsSpent,
		Status:       r.StatusAt(now),
		Type:         r.Type,
		SquadID:      r.SquadID,
		MemberIDs:    r.MemberIDs,
		CreatedAt:    r.CreatedAt,
		ExpiresAt:    optionalTime(r.ExpiresAt),
		UsedAt:       optionalTime(r.UsedAt),
	}
}

type memberView struct {
	AccountID        string     `json:"accountId"`
	DisplayName      string     `json:"displayName"`
	Avatar           string     `json:"avatar,omitempty"`
	StepsContributed int        `json:"stepsContributed"`
	WalletBalance    int        `json:"walletBalance"`
	Status           string     `json:"status"`
	InvitedAt        time.Time  `json:"invitedAt"`
	JoinedAt         *time.Time `json:"joinedAt,omitempty"`
}

type squadView struct {
	SquadID        string       `json:"squadId"`
	OfferID        string       `json:"offerId"`
	OfferTitle     string       `json:"offerTitle"`
	OfferPartner   string       `json:"offerPartner"`
	PartnerID      string       `json:"partnerId"`
	TargetSteps    int          `json:"targetSteps"`
	CurrentSteps   int          `json:"currentSteps"`
	Status         string       `json:"status"`
	HostID         string       `json:"hostId"`
	Members        []memberView `json:"members"`
	CreatedAt      time.Time    `json:"createdAt"`
	ExpiresAt      time.Time    `json:"expiresAt"`
	RedemptionID   string       `json:"redemptionId,omitempty"`
	RedemptionCode string       `json:"redemptionCode,omitempty"`
	RedeemedAt     *time.Time   `json:"redeemedAt,omitempty"`
	CancelledBy    string       `json:"cancelledBy,omitempty"`
}

func toSquadView(s core.SquadState) squadView {
	members := make([]memberView, 0, len(s.Members))
	for _, m := range s.Members {
		members = append(members, memberView{
			AccountID:        m.AccountID,
			DisplayName:      m.DisplayName,
			Avatar:           m.Avatar,
			StepsContributed: m.StepsContributed,
			WalletBalance:    m.WalletBalance,
			Status:           m.Status,
			InvitedAt:        m.InvitedAt,
			JoinedAt:         optionalTime(m.JoinedAt),
		})
	}

	return squadView{
		SquadID:        s.ID,
		OfferID:        s.OfferID,
		OfferTitle:     s.OfferTitle,
		OfferPartner:   s.OfferPartner,
		PartnerID:      s.PartnerID,
		TargetSteps:    s.TargetSteps,
		CurrentSteps:   s.CurrentSteps,
		Status:         s.Status,
		HostID:         s.HostID,
		Members:        members,
		CreatedAt:      s.CreatedAt,
		ExpiresAt:      s.ExpiresAt,
		RedemptionID:   s.RedemptionID,
		RedemptionCode: s.RedemptionCode,
		RedeemedAt:     optionalTime(s.RedeemedAt),
		CancelledBy:    s.CancelledBy,
	}
}

type standingView struct {
	Rank          int    `json:"rank"`
	AccountID     string `json:"accountId"`
	DisplayName   string `json:"displayName"`
	Avatar        string `json:"avatar,omitempty"`
	LifetimeSteps int    `json:"lifetimeSteps"`
	PeriodSteps   int    `json:"periodSteps"`
	Promoted      bool   `json:"promoted"`
	Demoted       bool   `json:"demoted"`
}

func toStandingViews(standings []core.Standing) []standingView {
	views := make([]standingView, 0, len(standings))
	for _, s := range standings {
		views = append(views, standingView{
			Rank:          s.Rank,
			AccountID:     s.AccountID,
			DisplayName:   s.DisplayName,
			Avatar:        s.Avatar,
			LifetimeSteps: s.LifetimeSteps,
			PeriodSteps:   s.PeriodSteps,
			Promoted:      s.Promoted,
			Demoted:       s.Demoted,
		})
	}

	return views
}

func toFailureView(f *core.Failure) *failureView {
	if f == nil {
		return nil
	}

	return &failureView{Code: f.Code, Message: f.Message}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
