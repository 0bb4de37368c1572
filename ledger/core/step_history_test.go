package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

func Test_ReconcileStepHistory_ReplacesTodayAndSortsNewestFirst(t *testing.T) {
	// arrange
	history := core.StepHistory{
		{Date: "2026-10-12", Steps: 4000},
		{Date: "2026-10-14", Steps: 100},
		{Date: "2026-10-13", Steps: 12000, GoalReached: true},
	}

	// act
	result := core.ReconcileStepHistory(history, "2026-10-14", 10500, core.DefaultDailyGoal, 0)

	// assert
	require.Len(t, result.History, 3)
	assert.Equal(t, core.StepEntry{Date: "2026-10-14", Steps: 10500, GoalReached: true}, result.History[0])
	assert.Equal(t, "2026-10-13", result.History[1].Date)
	assert.Equal(t, "2026-10-12", result.History[2].Date)
	assert.Equal(t, 26500, result.CandidateTotal)
	assert.Equal(t, 26500, result.LifetimeSteps)
}

func Test_ReconcileStepHistory_KeepsThirtyEntries(t *testing.T) {
	// arrange
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	history := make(core.StepHistory, 0, 30)
	for i := range 30 {
		history = append(history, core.StepEntry{Date: core.ToDateKey(start.AddDate(0, 0, i)), Steps: 1000})
	}
	today := core.ToDateKey(start.AddDate(0, 0, 30))

	// act
	result := core.ReconcileStepHistory(history, today, 500, core.DefaultDailyGoal, 0)

	// assert
	require.Len(t, result.History, core.MaxStepHistoryEntries)
	assert.Equal(t, today, result.History[0].Date)
	assert.Equal(t, "2026-09-02", result.History[29].Date)
	assert.False(t, result.Entry.GoalReached)
	assert.Equal(t, 29*1000+500, result.CandidateTotal)
}

func Test_ReconcileStepHistory_TotalNeverDecreases(t *testing.T) {
	// arrange
	history := make(core.StepHistory, 0, 30)
	for i := range 30 {
		history = append(history, core.StepEntry{Date: fmt.Sprintf("2026-09-%02d", i+1), Steps: 3200})
	}

	// act
	result := core.ReconcileStepHistory(history, "2026-10-01", 2200, core.DefaultDailyGoal, 100000)

	// assert
	assert.Equal(t, 95000, result.CandidateTotal)
	assert.Equal(t, 100000, result.LifetimeSteps)
}

func Test_ReconcileStepHistory_TotalIsMonotonicOverManyCalls(t *testing.T) {
	var history core.StepHistory
	stored := 0
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for day := range 90 {
		today := core.ToDateKey(start.AddDate(0, 0, day))
		for _, steps := range []int{(day * 37) % 15000, (day * 91) % 20000} {
			result := core.ReconcileStepHistory(history, today, steps, core.DefaultDailyGoal, stored)

			assert.GreaterOrEqual(t, result.LifetimeSteps, stored)
			history = result.History
			stored = result.LifetimeSteps
		}
	}
}

func Test_ShouldPersistSteps(t *testing.T) {
	history := core.StepHistory{{Date: "2026-10-14", Steps: 5000}}

	testCases := []struct {
		name     string
		today    string
		steps    int
		force    bool
		expected bool
	}{
		{name: "first sample of the day", today: "2026-10-15", steps: 1, expected: true},
		{name: "small change", today: "2026-10-14", steps: 5099, expected: false},
		{name: "change of exactly the minimum delta", today: "2026-10-14", steps: 5100, expected: false},
		{name: "change exceeds minimum delta", today: "2026-10-14", steps: 5101, expected: true},
		{name: "decrease of exactly the minimum delta", today: "2026-10-14", steps: 4900, expected: false},
		{name: "decrease exceeds minimum delta", today: "2026-10-14", steps: 4899, expected: true},
		{name: "forced flush", today: "2026-10-14", steps: 5001, force: true, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := core.ShouldPersistSteps(history, tc.today, tc.steps, core.DefaultMinimumStepDelta, tc.force)

			assert.Equal(t, tc.expected, actual)
		})
	}
}
