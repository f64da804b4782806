package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeAnalyticsPreservesSummary(t *testing.T) {
	r := SimulationResult{Summary: SummaryResult{OverallScore: 70, Narrative: "solid"}}

	r.MergeAnalytics(AnalyticsResult{RiskNotes: []string{"funding gap"}})

	assert.Equal(t, float64(70), r.Summary.OverallScore)
	require.NotNil(t, r.Analytics)
	assert.Equal(t, []string{"funding gap"}, r.Analytics.RiskNotes)
	assert.Nil(t, r.Strategy)
}

func TestMergeStrategyDoesNotTouchAnalytics(t *testing.T) {
	r := SimulationResult{Summary: SummaryResult{OverallScore: 70}}
	r.MergeAnalytics(AnalyticsResult{RiskNotes: []string{"funding gap"}})

	r.MergeStrategy(StrategyResult{Schedule: []ScheduleItem{{Task: "Baseline survey", StartMonth: 1, DurationMonths: 2, Type: TaskPlanning}}})

	require.NotNil(t, r.Analytics)
	assert.Equal(t, []string{"funding gap"}, r.Analytics.RiskNotes)
	require.NotNil(t, r.Strategy)
	require.Len(t, r.Strategy.Schedule, 1)
}

func TestBackfillEmptyFillsOnlyAbsentGroups(t *testing.T) {
	r := SimulationResult{Summary: SummaryResult{OverallScore: 70}}
	r.MergeAnalytics(AnalyticsResult{RiskNotes: []string{"funding gap"}})

	r.BackfillEmpty()

	// Populated group untouched.
	assert.Equal(t, []string{"funding gap"}, r.Analytics.RiskNotes)
	// Absent group becomes empty but present.
	require.NotNil(t, r.Strategy)
	assert.NotNil(t, r.Strategy.Schedule)
	assert.Empty(t, r.Strategy.Schedule)
	assert.NotNil(t, r.Strategy.Pivots)
}

func TestBackfillEmptyOnSummaryOnlyResult(t *testing.T) {
	r := SimulationResult{Summary: SummaryResult{OverallScore: 70}}
	r.BackfillEmpty()

	require.NotNil(t, r.Analytics)
	assert.NotNil(t, r.Analytics.Metrics)
	assert.Empty(t, r.Analytics.Metrics)
	assert.NotNil(t, r.Analytics.Timeline)
	assert.Empty(t, r.Analytics.Timeline)
	assert.NotNil(t, r.Analytics.RiskMatrix)
	require.NotNil(t, r.Strategy)
}
