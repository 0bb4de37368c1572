package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/markredemptionused"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/recorddailysteps"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/redeemoffer"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/registeraccount"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/listredemptions"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/validateredemption"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/walletbalance"
)

// registerAccount handles POST /accounts, a missing accountId is generated.
func (s *Server) registerAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID   string `json:"accountId"`
		DisplayName string `json:"displayName"`
		Avatar      string `json:"avatar"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.AccountID == "" {
		req.AccountID = uuid.NewString()
	}

	result, err := s.handlers.RegisterAccount.Handle(
		r.Context(),
		registeraccount.BuildCommand(req.AccountID, req.DisplayName, req.Avatar, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusCreated, result.Execution(), nil, toAccountView(result.Account))
}

// recordDailySteps handles POST /accounts/{accountID}/steps with today's cumulative sample.
func (s *Server) recordDailySteps(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Steps     int  `json:"steps"`
		DailyGoal int  `json:"dailyGoal"`
		Force     bool `json:"force"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.handlers.RecordDailySteps.Handle(
		r.Context(),
		recorddailysteps.BuildCommand(chi.URLParam(r, "accountID"), req.Steps, req.DailyGoal, req.Force, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusOK, result.Execution(), nil, struct {
		Written       bool          `json:"written"`
		Entry         stepEntryView `json:"entry"`
		LifetimeSteps int           `json:"lifetimeSteps"`
		Balance       balanceView   `json:"balance"`
	}{
		Written:       result.Written,
		Entry:         stepEntryView{Date: result.Entry.Date, Steps: result.Entry.Steps, GoalReached: result.Entry.GoalReached},
		LifetimeSteps: result.LifetimeSteps,
		Balance:       toBalanceView(result.Balance),
	})
}

func (s *Server) walletBalance(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.handlers.WalletBalance.Handle(
		r.Context(),
		walletbalance.BuildQuery(chi.URLParam(r, "accountID"), s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, struct {
		AccountID            string          `json:"accountId"`
		DisplayName          string          `json:"displayName"`
		Avatar               string          `json:"avatar,omitempty"`
		Balance              balanceView     `json:"balance"`
		Tier                 tierView        `json:"tier"`
		RedemptionsToday     int             `json:"redemptionsToday"`
		RemainingRedemptions int             `json:"remainingRedemptions"`
		StepHistory          []stepEntryView `json:"stepHistory"`
	}{
		AccountID:            wallet.AccountID,
		DisplayName:          wallet.DisplayName,
		Avatar:               wallet.Avatar,
		Balance:              toBalanceView(wallet.Balance),
		Tier:                 toTierView(wallet.Tier),
		RedemptionsToday:     wallet.RedemptionsToday,
		RemainingRedemptions: wallet.RemainingRedemptions,
		StepHistory:          toStepEntryViews(wallet.StepHistory),
	})
}

func (s *Server) listRedemptions(w http.ResponseWriter, r *http.Request) {
	now := s.now()

	list, err := s.handlers.ListRedemptions.Handle(
		r.Context(),
		listredemptions.BuildQuery(chi.URLParam(r, "accountID"), now),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]redemptionView, 0, len(list.Redemptions))
	for _, redemption := range list.Redemptions {
		views = append(views, toRedemptionView(redemption, now))
	}

	writeData(w, http.StatusOK, struct {
		Redemptions []redemptionView `json:"redemptions"`
		Count       int              `json:"count"`
	}{
		Redemptions: views,
		Count:       list.Count,
	})
}

// validateRedemption handles GET /accounts/{accountID}/redemptions/check?steps=N.
func (s *Server) validateRedemption(w http.ResponseWriter, r *http.Request) {
	steps, err := intParam(r, "steps")
	if err != nil {
		writeError(w, err)
		return
	}

	validation, err := s.handlers.ValidateRedemption.Handle(
		r.Context(),
		validateredemption.BuildQuery(chi.URLParam(r, "accountID"), steps, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, struct {
		CanRedeem        bool         `json:"canRedeem"`
		Failure          *failureView `json:"failure,omitempty"`
		Balance          balanceView  `json:"balance"`
		RedemptionsToday int          `json:"redemptionsToday"`
	}{
		CanRedeem:        validation.CanRedeem,
		Failure:          toFailureView(validation.Failure),
		Balance:          toBalanceView(validation.Balance),
		RedemptionsToday: validation.RedemptionsToday,
	})
}

// redeemOffer handles POST /accounts/{accountID}/redemptions, operationId makes retries idempotent.
func (s *Server) redeemOffer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OperationID   string `json:"operationId"`
		OfferID       string `json:"offerId"`
		PartnerID     string `json:"partnerId"`
		Title         string `json:"title"`
		StepsRequired int    `json:"stepsRequired"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	offer := core.Offer{OfferID: req.OfferID, PartnerID: req.PartnerID, Title: req.Title, StepsRequired: req.StepsRequired}

	result, err := s.handlers.RedeemOffer.Handle(
		r.Context(),
		redeemoffer.BuildCommand(chi.URLParam(r, "accountID"), req.OperationID, offer, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusCreated, result.Execution(), result.Failure, struct {
		RedemptionID   string      `json:"redemptionId,omitempty"`
		RedemptionCode string      `json:"redemptionCode,omitempty"`
		ExpiresAt      *time.Time  `json:"expiresAt,omitempty"`
		Balance        balanceView `json:"balance"`
	}{
		RedemptionID:   result.RedemptionID,
		RedemptionCode: result.RedemptionCode,
		ExpiresAt:      optionalTime(result.ExpiresAt),
		Balance:        toBalanceView(result.Balance),
	})
}

func (s *Server) markRedemptionUsed(w http.ResponseWriter, r *http.Request) {
	now := s.now()

	result, err := s.handlers.MarkRedemptionUsed.Handle(
		r.Context(),
		markredemptionused.BuildCommand(chi.URLParam(r, "accountID"), chi.URLParam(r, "redemptionID"), now),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	var data any
	if result.Redemption.ID != "" {
		data = toRedemptionView(result.Redemption, now)
	}

	writeCommand(w, http.StatusOK, result.Execution(), result.Failure, data)
}
