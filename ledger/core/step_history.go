package core

import (
	"sort"
)

const (
	MaxStepHistoryEntries   = 30
	DefaultDailyGoal        = 10000
	DefaultMinimumStepDelta = 100
)

// StepEntry is the step count of one calendar day.
type StepEntry struct {
	Date        DateKey
	Steps       int
	GoalReached bool
}

// StepHistory is ordered newest-first and holds at most MaxStepHistoryEntries entries.
type StepHistory = []StepEntry

// Reconciliation is the result of merging today's sample into the history.
type Reconciliation struct {
	Entry          StepEntry
	History        StepHistory
	CandidateTotal int
	LifetimeSteps  int
}

// ReconcileStepHistory replaces today's entry with the new sample, keeps the newest entries
// and computes the lifetime total. The total never drops below storedTotal.
func ReconcileStepHistory(
	history StepHistory,
	today DateKey,
	steps int,
	dailyGoal int,
	storedTotal int,
) Reconciliation {

	steps = max(0, steps)
	entry := StepEntry{Date: today, Steps: steps, GoalReached: steps >= dailyGoal}

	merged := MergeStepEntry(history, entry)

	candidate := 0
	for _, e := range merged {
		candidate += e.Steps
	}

	return Reconciliation{
		Entry:          entry,
		History:        merged,
		CandidateTotal: candidate,
		LifetimeSteps:  max(candidate, storedTotal),
	}
}

// MergeStepEntry replaces the entry of the same day, sorts newest-first and truncates the history.
func MergeStepEntry(history StepHistory, entry StepEntry) StepHistory {
	merged := make(StepHistory, 0, len(history)+1)
	for _, existing := range history {
		if existing.Date != entry.Date {
			merged = append(merged, existing)
		}
	}
	merged = append(merged, entry)

	// Date keys are YYYY-MM-DD, so lexical order is chronological order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})

	if len(merged) > MaxStepHistoryEntries {
		merged = merged[:MaxStepHistoryEntries]
	}

	return merged
}

// ShouldPersistSteps decides whether a new sample for today is written.
// The first sample of a day is always written, later ones only if they moved by more than minimumDelta.
func ShouldPersistSteps(history StepHistory, today DateKey, steps int, minimumDelta int, force bool) bool {
	if force {
		return true
	}

	for _, entry := range history {
		if entry.Date == today {
			delta := steps - entry.Steps
			if delta < 0 {
				delta = -delta
			}

			return delta > minimumDelta
		}
	}

	return true
}
