package core

import (
	"time"
)

const (
	ChallengeJoinedEventType           = "ChallengeJoined"
	ChallengeProgressRecordedEventType = "ChallengeProgressRecorded"

	JoiningChallengeFailedEventType           = "JoiningChallengeFailed"
	RecordingChallengeProgressFailedEventType = "RecordingChallengeProgressFailed"
)

// Challenge is the catalog entry an account joins, the catalog itself lives outside the ledger.
type Challenge struct {
	ChallengeID  ChallengeIDString
	Title        string
	Goal         int
	GoalUnit     string
	RewardPoints int
	EndsAt       time.Time
}

// ChallengeJoined copies the goal and the end of the challenge, progress is judged against this copy.
type ChallengeJoined struct {
	ChallengeID  ChallengeIDString
	AccountID    AccountIDString
	Title        string
	Goal         int
	GoalUnit     string
	RewardPoints int
	EndsAt       time.Time
	OccurredAt   OccurredAt
}

func BuildChallengeJoined(accountID AccountIDString, challenge Challenge, occurredAt time.Time) ChallengeJoined {
	endsAt := challenge.EndsAt
	if !endsAt.IsZero() {
		endsAt = ToOccurredAt(endsAt)
	}

	return ChallengeJoined{
		ChallengeID:  challenge.ChallengeID,
		AccountID:    accountID,
		Title:        challenge.Title,
		Goal:         challenge.Goal,
		GoalUnit:     challenge.GoalUnit,
		RewardPoints: challenge.RewardPoints,
		EndsAt:       endsAt,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

func (e ChallengeJoined) EventType() string        { return ChallengeJoinedEventType }
func (e ChallengeJoined) HasOccurredAt() time.Time { return e.OccurredAt }
func (e ChallengeJoined) IsErrorEvent() bool       { return false }

// ChallengeProgressRecorded replaces the progress of a participant, Completed is set once Progress reaches the goal.
type ChallengeProgressRecorded struct {
	ChallengeID     ChallengeIDString
	AccountID       AccountIDString
	Progress        int
	ProgressPercent int
	Completed       bool
	OccurredAt      OccurredAt
}

func BuildChallengeProgressRecorded(
	participant ChallengeParticipant,
	progress int,
	occurredAt time.Time,
) ChallengeProgressRecorded {

	return ChallengeProgressRecorded{
		ChallengeID:     participant.ChallengeID,
		AccountID:       participant.AccountID,
		Progress:        progress,
		ProgressPercent: ChallengeProgressPercent(progress, participant.Goal),
		Completed:       progress >= participant.Goal,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

func (e ChallengeProgressRecorded) EventType() string        { return ChallengeProgressRecordedEventType }
func (e ChallengeProgressRecorded) HasOccurredAt() time.Time { return e.OccurredAt }
func (e ChallengeProgressRecorded) IsErrorEvent() bool       { return false }

// ChallengeOperationFailed records a rejected challenge command under one of the challenge failure event types.
type ChallengeOperationFailed struct {
	ChallengeID      ChallengeIDString
	AccountID        AccountIDString
	FailureCode      FailureCode
	FailureInfo      string
	OccurredAt       OccurredAt
	DynamicEventType string
}

func BuildChallengeOperationFailed(
	eventType string,
	challengeID ChallengeIDString,
	accountID AccountIDString,
	failure Failure,
	occurredAt time.Time,
) ChallengeOperationFailed {

	return ChallengeOperationFailed{
		ChallengeID:      challengeID,
		AccountID:        accountID,
		FailureCode:      failure.Code,
		FailureInfo:      failure.Message,
		OccurredAt:       ToOccurredAt(occurredAt),
		DynamicEventType: eventType,
	}
}

func (e ChallengeOperationFailed) EventType() string        { return e.DynamicEventType }
func (e ChallengeOperationFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e ChallengeOperationFailed) IsErrorEvent() bool       { return true }

// IsChallengeFailureEventType returns true for the event types that are decoded into ChallengeOperationFailed.
func IsChallengeFailureEventType(eventType string) bool {
	return eventType == JoiningChallengeFailedEventType || eventType == RecordingChallengeProgressFailedEventType
}
