package core

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AccountIDString identifies a user account.
type AccountIDString = string

// SquadIDString identifies a squad.
type SquadIDString = string

// RedemptionIDString identifies a redemption record.
type RedemptionIDString = string

// ChallengeIDString identifies a challenge from the catalog.
type ChallengeIDString = string

// DateKey is a calendar day in UTC formatted as YYYY-MM-DD.
type DateKey = string

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

const dateKeyLayout = "2006-01-02"

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDateKey returns the UTC calendar day of t.
func ToDateKey(t time.Time) DateKey {
	return t.UTC().Format(dateKeyLayout)
}

// FormatSteps renders a step count with thousands separators, e.g. 12,000.
// A message.Printer is not safe for concurrent use, so each call gets its own.
func FormatSteps(steps int) string {
	return message.NewPrinter(language.English).Sprintf("%d", steps)
}
