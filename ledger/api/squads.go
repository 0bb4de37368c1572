package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/acceptinvitation"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/cancelsquad"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/contributesteps"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/createsquad"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/declineinvitation"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/redeemsquadreward"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/activesquad"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/validategroupredemption"
)

type memberRequest struct {
	AccountID string `json:"accountId"`
}

// squadData is nil for commands that did not reach a squad, so that data is omitted.
func squadData(squad core.SquadState) any {
	if squad.ID == "" {
		return nil
	}

	return toSquadView(squad)
}

// createSquad handles POST /squads, a missing squadId is generated.
func (s *Server) createSquad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SquadID      string   `json:"squadId"`
		HostID       string   `json:"hostId"`
		OfferID      string   `json:"offerId"`
		OfferTitle   string   `json:"offerTitle"`
		OfferPartner string   `json:"offerPartner"`
		PartnerID    string   `json:"partnerId"`
		TargetSteps  int      `json:"targetSteps"`
		InviteeIDs   []string `json:"inviteeIds"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.SquadID == "" {
		req.SquadID = uuid.NewString()
	}

	offer := core.SquadOffer{
		OfferID:      req.OfferID,
		OfferTitle:   req.OfferTitle,
		OfferPartner: req.OfferPartner,
		PartnerID:    req.PartnerID,
		TargetSteps:  req.TargetSteps,
	}

	result, err := s.handlers.CreateSquad.Handle(
		r.Context(),
		createsquad.BuildCommand(req.SquadID, req.HostID, offer, req.InviteeIDs, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	var data any
	if result.Squad.ID != "" {
		data = struct {
			Squad           squadView `json:"squad"`
			SkippedInvitees []string  `json:"skippedInvitees,omitempty"`
		}{
			Squad:           toSquadView(result.Squad),
			SkippedInvitees: result.SkippedInvitees,
		}
	}

	writeCommand(w, http.StatusCreated, result.Execution(), result.Failure, data)
}

func (s *Server) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.handlers.AcceptInvitation.Handle(
		r.Context(),
		acceptinvitation.BuildCommand(chi.URLParam(r, "squadID"), req.AccountID, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusOK, result.Execution(), result.Failure, squadData(result.Squad))
}

func (s *Server) declineInvitation(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.handlers.DeclineInvitation.Handle(
		r.Context(),
		declineinvitation.BuildCommand(chi.URLParam(r, "squadID"), req.AccountID, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusOK, result.Execution(), result.Failure, squadData(result.Squad))
}

func (s *Server) cancelSquad(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.handlers.CancelSquad.Handle(
		r.Context(),
		cancelsquad.BuildCommand(chi.URLParam(r, "squadID"), req.AccountID, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusOK, result.Execution(), result.Failure, squadData(result.Squad))
}

func (s *Server) contributeSteps(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID string `json:"accountId"`
		Steps     int    `json:"steps"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.handlers.ContributeSteps.Handle(
		r.Context(),
		contributesteps.BuildCommand(chi.URLParam(r, "squadID"), req.AccountID, req.Steps, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusOK, result.Execution(), result.Failure, squadData(result.Squad))
}

// validateGroupRedemption handles GET /squads/{squadID}/redemption/check?accountId=ID.
func (s *Server) validateGroupRedemption(w http.ResponseWriter, r *http.Request) {
	validation, err := s.handlers.ValidateGroupRedemption.Handle(
		r.Context(),
		validategroupredemption.BuildQuery(chi.URLParam(r, "squadID"), r.URL.Query().Get("accountId"), s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, struct {
		CanRedeem          bool         `json:"canRedeem"`
		Failure            *failureView `json:"failure,omitempty"`
		TotalWalletBalance int          `json:"totalWalletBalance"`
		RequiredBalance    int          `json:"requiredBalance"`
		Squad              squadView    `json:"squad"`
	}{
		CanRedeem:          validation.CanRedeem,
		Failure:            toFailureView(validation.Failure),
		TotalWalletBalance: validation.TotalWalletBalance,
		RequiredBalance:    validation.RequiredBalance,
		Squad:              toSquadView(validation.Squad),
	})
}

func (s *Server) redeemSquadReward(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.handlers.RedeemSquadReward.Handle(
		r.Context(),
		redeemsquadreward.BuildCommand(chi.URLParam(r, "squadID"), req.AccountID, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	type debitView struct {
		AccountID string `json:"accountId"`
		Steps     int    `json:"steps"`
	}

	debits := make([]debitView, 0, len(result.Debits))
	for _, d := range result.Debits {
		debits = append(debits, debitView{AccountID: d.AccountID, Steps: d.Steps})
	}

	var data any
	if result.Squad.ID != "" {
		data = struct {
			RedemptionID   string      `json:"redemptionId,omitempty"`
			RedemptionCode string      `json:"redemptionCode,omitempty"`
			Debits         []debitView `json:"debits"`
			Squad          squadView   `json:"squad"`
		}{
			RedemptionID:   result.RedemptionID,
			RedemptionCode: result.RedemptionCode,
			Debits:         debits,
			Squad:          toSquadView(result.Squad),
		}
	}

	writeCommand(w, http.StatusOK, result.Execution(), result.Failure, data)
}

// activeSquad handles GET /accounts/{accountID}/squad, data.squad is null without a live squad.
func (s *Server) activeSquad(w http.ResponseWriter, r *http.Request) {
	active, err := s.handlers.ActiveSquad.Handle(
		r.Context(),
		activesquad.BuildQuery(chi.URLParam(r, "accountID"), s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	var squad *squadView
	if active.Found {
		view := toSquadView(active.Squad)
		squad = &view
	}

	writeData(w, http.StatusOK, struct {
		Joined bool       `json:"joined"`
		Squad  *squadView `json:"squad"`
	}{
		Joined: active.Joined,
		Squad:  squad,
	})
}
