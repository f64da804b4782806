package sim

// Partial-result merging is additive/overwriting only, never subtractive.
// A later stage sets its own field group and must not clear an earlier one.

// MergeAnalytics sets the stage-2 field group.
func (r *SimulationResult) MergeAnalytics(a AnalyticsResult) {
	r.Analytics = &a
}

// MergeStrategy sets the stage-3 field group. Stage-2 fields are not
// touched even when they are still absent.
func (r *SimulationResult) MergeStrategy(s StrategyResult) {
	r.Strategy = &s
}

// BackfillEmpty replaces still-absent optional field groups with empty
// ones so dependent rendering can stop showing a loading state. This is
// a presentation accommodation after a background-stage failure, not a
// data-model guarantee; populated groups are left alone.
func (r *SimulationResult) BackfillEmpty() {
	if r.Analytics == nil {
		r.Analytics = &AnalyticsResult{
			Metrics:         []Metric{},
			Timeline:        []TimelineEvent{},
			BudgetBreakdown: []BudgetItem{},
			Stakeholders:    []Stakeholder{},
			RiskMatrix:      []RiskEntry{},
			LongTermImpact:  []ImpactProjection{},
			RiskNotes:       []string{},
		}
	}
	if r.Strategy == nil {
		r.Strategy = &StrategyResult{
			Schedule: []ScheduleItem{},
			Pivots:   []PivotSuggestion{},
		}
	}
}
