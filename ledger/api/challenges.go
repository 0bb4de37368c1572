package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/joinchallenge"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/recordchallengeprogress"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/challengeprogress"
)

type participantView struct {
	ChallengeID     string     `json:"challengeId"`
	AccountID       string     `json:"accountId"`
	Title           string     `json:"title,omitempty"`
	Goal            int        `json:"goal"`
	GoalUnit        string     `json:"goalUnit,omitempty"`
	RewardPoints    int        `json:"rewardPoints"`
	CurrentProgress int        `json:"currentProgress"`
	ProgressPercent int        `json:"progressPercent"`
	Status          string     `json:"status"`
	Rank            int        `json:"rank,omitempty"`
	JoinedAt        time.Time  `json:"joinedAt"`
	LastUpdatedAt   time.Time  `json:"lastUpdatedAt"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

func toParticipantView(p core.ChallengeParticipant) participantView {
	return participantView{
		ChallengeID:     p.ChallengeID,
		AccountID:       p.AccountID,
		Title:           p.Title,
		Goal:            p.Goal,
		GoalUnit:        p.GoalUnit,
		RewardPoints:    p.RewardPoints,
		CurrentProgress: p.CurrentProgress,
		ProgressPercent: p.ProgressPercent,
		Status:          p.Status,
		Rank:            p.Rank,
		JoinedAt:        p.JoinedAt,
		LastUpdatedAt:   p.LastUpdatedAt,
		EndsAt:          optionalTime(p.EndsAt),
		CompletedAt:     optionalTime(p.CompletedAt),
	}
}

// participantData is nil for commands that did not reach a participation.
func participantData(p core.ChallengeParticipant) any {
	if p.AccountID == "" {
		return nil
	}

	return toParticipantView(p)
}

// joinChallenge handles POST /challenges/{challengeID}/participants, the body carries the catalog entry.
func (s *Server) joinChallenge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID    string     `json:"accountId"`
		Title        string     `json:"title"`
		Goal         int        `json:"goal"`
		GoalUnit     string     `json:"goalUnit"`
		RewardPoints int        `json:"rewardPoints"`
		EndsAt       *time.Time `json:"endsAt"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	challenge := core.Challenge{
		ChallengeID:  chi.URLParam(r, "challengeID"),
		Title:        req.Title,
		Goal:         req.Goal,
		GoalUnit:     req.GoalUnit,
		RewardPoints: req.RewardPoints,
	}
	if req.EndsAt != nil {
		challenge.EndsAt = *req.EndsAt
	}

	result, err := s.handlers.JoinChallenge.Handle(r.Context(), joinchallenge.BuildCommand(req.AccountID, challenge, s.now()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusCreated, result.Execution(), result.Failure, participantData(result.Participant))
}

// recordChallengeProgress handles POST /challenges/{challengeID}/progress.
func (s *Server) recordChallengeProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID string `json:"accountId"`
		Progress  int    `json:"progress"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.handlers.RecordChallengeProgress.Handle(
		r.Context(),
		recordchallengeprogress.BuildCommand(chi.URLParam(r, "challengeID"), req.AccountID, req.Progress, s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusOK, result.Execution(), result.Failure, participantData(result.Participant))
}

// challengeProgress handles GET /challenges/{challengeID}?accountId=, the account is optional.
func (s *Server) challengeProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.handlers.ChallengeProgress.Handle(
		r.Context(),
		challengeprogress.BuildQuery(chi.URLParam(r, "challengeID"), r.URL.Query().Get("accountId"), s.now()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	leaderboard := make([]participantView, 0, len(progress.Leaderboard))
	for _, p := range progress.Leaderboard {
		leaderboard = append(leaderboard, toParticipantView(p))
	}

	var participant *participantView
	if progress.Participant != nil {
		view := toParticipantView(*progress.Participant)
		participant = &view
	}

	writeData(w, http.StatusOK, struct {
		ChallengeID      string            `json:"challengeId"`
		ParticipantCount int               `json:"participantCount"`
		CompletedCount   int               `json:"completedCount"`
		Participant      *participantView  `json:"participant,omitempty"`
		Leaderboard      []participantView `json:"leaderboard"`
	}{
		ChallengeID:      progress.ChallengeID,
		ParticipantCount: progress.ParticipantCount,
		CompletedCount:   progress.CompletedCount,
		Participant:      participant,
		Leaderboard:      leaderboard,
	})
}
