package core

import (
	"slices"
	"time"
)

type ChallengeStatus = string

const (
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusFailed    ChallengeStatus = "failed"
)

// ChallengeParticipant is the participation of one account in one challenge projected at an instant.
type ChallengeParticipant struct {
	ChallengeID     ChallengeIDString
	AccountID       AccountIDString
	Title           string
	Goal            int
	GoalUnit        string
	RewardPoints    int
	EndsAt          time.Time
	CurrentProgress int
	ProgressPercent int
	Status          ChallengeStatus
	JoinedAt        time.Time
	LastUpdatedAt   time.Time
	CompletedAt     time.Time
	Rank            int
}

func (p ChallengeParticipant) IsTerminal() bool {
	return p.Status != ChallengeStatusActive
}

// ChallengeProgressPercent is the share of the goal reached, capped at 100.
func ChallengeProgressPercent(progress int, goal int) int {
	if goal <= 0 || progress <= 0 {
		return 0
	}

	return min(progress*100/goal, 100)
}

// ProjectChallengeParticipants folds the challenge events into its participants in join order.
// Participants who did not complete before EndsAt project as failed once now is not before EndsAt.
func ProjectChallengeParticipants(challengeID ChallengeIDString, events DomainEvents, now time.Time) []ChallengeParticipant {
	var participants []ChallengeParticipant
	index := make(map[AccountIDString]int)

	for _, event := range events {
		switch e := event.(type) {
		case ChallengeJoined:
			if e.ChallengeID != challengeID {
				continue
			}
			if _, found := index[e.AccountID]; found {
				continue
			}
			index[e.AccountID] = len(participants)
			participants = append(participants, ChallengeParticipant{
				ChallengeID:   e.ChallengeID,
				AccountID:     e.AccountID,
				Title:         e.Title,
				Goal:          e.Goal,
				GoalUnit:      e.GoalUnit,
				RewardPoints:  e.RewardPoints,
				EndsAt:        e.EndsAt,
				Status:        ChallengeStatusActive,
				JoinedAt:      e.OccurredAt,
				LastUpdatedAt: e.OccurredAt,
			})

		case ChallengeProgressRecorded:
			if e.ChallengeID != challengeID {
				continue
			}
			i, found := index[e.AccountID]
			if !found || participants[i].Status == ChallengeStatusCompleted {
				continue
			}
			participants[i].CurrentProgress = e.Progress
			participants[i].ProgressPercent = e.ProgressPercent
			participants[i].LastUpdatedAt = e.OccurredAt
			if e.Completed {
				participants[i].Status = ChallengeStatusCompleted
				participants[i].CompletedAt = e.OccurredAt
			}
		}
	}

	for i := range participants {
		p := &participants[i]
		if p.Status == ChallengeStatusActive && !p.EndsAt.IsZero() && !now.Before(p.EndsAt) {
			p.Status = ChallengeStatusFailed
		}
	}

	return participants
}

func FindChallengeParticipant(participants []ChallengeParticipant, accountID AccountIDString) (ChallengeParticipant, bool) {
	for _, p := range participants {
		if p.AccountID == accountID {
			return p, true
		}
	}

	return ChallengeParticipant{}, false
}

// RankChallengeParticipants orders a copy by progress, highest first. Ties go to whoever joined first.
// Rank starts at 1, equal progress shares a rank.
func RankChallengeParticipants(participants []ChallengeParticipant) []ChallengeParticipant {
	ranked := slices.Clone(participants)

	slices.SortStableFunc(ranked, func(a, b ChallengeParticipant) int {
		if a.CurrentProgress != b.CurrentProgress {
			return b.CurrentProgress - a.CurrentProgress
		}

		return a.JoinedAt.Compare(b.JoinedAt)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		if i > 0 && ranked[i].CurrentProgress == ranked[i-1].CurrentProgress {
			ranked[i].Rank = ranked[i-1].Rank
		}
	}

	return ranked
}
