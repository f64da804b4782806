// Package sim defines the domain model for ImpactSim feasibility runs:
// the user-authored project description, the staged simulation result,
// and the merge rules that accumulate partial results across stages.
package sim

import (
	"fmt"
	"strings"
)

// ProjectDescription is the user-authored input record. All fields are
// free text except StrategyHistory, which is an ordered append-only log
// of applied-strategy entries. No field has an enforced format; the only
// gate for a run is a non-empty title.
type ProjectDescription struct {
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	TargetAudience  string   `json:"targetAudience"`
	Sector          string   `json:"sector"`
	Budget          string   `json:"budget"`
	Duration        string   `json:"duration"`
	LocalPartner    string   `json:"localPartner"`
	TechnologyLevel string   `json:"technologyLevel"`
	FundingSource   string   `json:"fundingSource"`
	TeamExperience  string   `json:"teamExperience"`
	Description     string   `json:"description"`
	StrategyHistory []string `json:"strategyHistory,omitempty"`
}

// CanSimulate reports whether the project is complete enough to run.
func (p *ProjectDescription) CanSimulate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("project title is required")
	}
	return nil
}

// Clone returns a deep copy. The strategy history slice is copied so the
// clone cannot observe later appends.
func (p *ProjectDescription) Clone() ProjectDescription {
	out := *p
	if p.StrategyHistory != nil {
		out.StrategyHistory = make([]string, len(p.StrategyHistory))
		copy(out.StrategyHistory, p.StrategyHistory)
	}
	return out
}

// SummaryResult holds the stage-1 field group. It is always present once
// any result exists. Scores use a 0-100 scale throughout, including
// community sentiment.
type SummaryResult struct {
	OverallScore        float64  `json:"overallScore"`
	CommunitySentiment  float64  `json:"communitySentiment"`
	SustainabilityScore float64  `json:"sustainabilityScore"`
	Narrative           string   `json:"narrative"`
	SuccessFactors      []string `json:"successFactors"`
}

// Metric is one per-category feasibility score with its reasoning.
type Metric struct {
	Category  string  `json:"category"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// TimelineEvent is one sentiment checkpoint in the simulated lifecycle.
type TimelineEvent struct {
	Month          string  `json:"month"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	SentimentScore float64 `json:"sentimentScore"`
}

// BudgetItem is one slice of the budget-allocation breakdown. Percentages
// are not contractually validated to sum to 100.
type BudgetItem struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

// Stakeholder carries a signed sentiment (-100 strongly oppose to 100
// strongly support) and a categorical influence level.
type Stakeholder struct {
	Group     string  `json:"group"`
	Sentiment float64 `json:"sentiment"`
	Influence string  `json:"influence"`
}

// RiskEntry is one row of the risk matrix, likelihood and severity on
// 1-10 scales.
type RiskEntry struct {
	Risk       string `json:"risk"`
	Likelihood int    `json:"likelihood"`
	Severity   int    `json:"severity"`
}

// ImpactProjection is one year of the multi-year impact projection.
type ImpactProjection struct {
	Year          string  `json:"year"`
	Social        float64 `json:"social"`
	Economic      float64 `json:"economic"`
	Environmental float64 `json:"environmental"`
}

// AnalyticsResult holds the stage-2 field group.
type AnalyticsResult struct {
	Metrics         []Metric           `json:"metrics"`
	Timeline        []TimelineEvent    `json:"timeline"`
	BudgetBreakdown []BudgetItem       `json:"budgetBreakdown"`
	Stakeholders    []Stakeholder      `json:"stakeholderAnalysis"`
	RiskMatrix      []RiskEntry        `json:"riskAnalysis"`
	LongTermImpact  []ImpactProjection `json:"longTermImpact"`
	RiskNotes       []string           `json:"risks"`
}

// Schedule task categories.
const (
	TaskPlanning  = "planning"
	TaskExecution = "execution"
	TaskMilestone = "milestone"
)

// ScheduleItem is one task in the implementation schedule.
type ScheduleItem struct {
	Task           string `json:"task"`
	StartMonth     int    `json:"startMonth"`
	DurationMonths int    `json:"durationMonths"`
	Type           string `json:"type"`
}

// ProjectChanges is a partial ProjectDescription carried by a pivot
// suggestion. Empty fields mean "leave unchanged"; the strategy history
// is never overridden, only appended to via ApplyPivot.
type ProjectChanges struct {
	Title           string `json:"title,omitempty"`
	Location        string `json:"location,omitempty"`
	TargetAudience  string `json:"targetAudience,omitempty"`
	Sector          string `json:"sector,omitempty"`
	Budget          string `json:"budget,omitempty"`
	Duration        string `json:"duration,omitempty"`
	LocalPartner    string `json:"localPartner,omitempty"`
	TechnologyLevel string `json:"technologyLevel,omitempty"`
	FundingSource   string `json:"fundingSource,omitempty"`
	TeamExperience  string `json:"teamExperience,omitempty"`
	Description     string `json:"description,omitempty"`
}

// PivotSuggestion is a suggested strategy change, applied on user action.
type PivotSuggestion struct {
	Title        string          `json:"title"`
	Modification string          `json:"modification"`
	Rationale    string          `json:"rationale"`
	Changes      *ProjectChanges `json:"changes,omitempty"`
}

// StrategyResult holds the stage-3 field group.
type StrategyResult struct {
	Schedule []ScheduleItem    `json:"schedule"`
	Pivots   []PivotSuggestion `json:"pivots"`
}

// SimulationResult accumulates output across the three stages. Analytics
// and Strategy stay nil until their background stage resolves; once set
// they are never retracted.
type SimulationResult struct {
	Summary   SummaryResult    `json:"summary"`
	Analytics *AnalyticsResult `json:"analytics,omitempty"`
	Strategy  *StrategyResult  `json:"strategy,omitempty"`
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Clone returns a deep copy: no slice or pointer is shared with the
// receiver, so a caller mutating the copy cannot reach the original.
func (r SimulationResult) Clone() SimulationResult {
	out := r
	out.Summary.SuccessFactors = cloneSlice(r.Summary.SuccessFactors)
	if r.Analytics != nil {
		a := *r.Analytics
		a.Metrics = cloneSlice(a.Metrics)
		a.Timeline = cloneSlice(a.Timeline)
		a.BudgetBreakdown = cloneSlice(a.BudgetBreakdown)
		a.Stakeholders = cloneSlice(a.Stakeholders)
		a.RiskMatrix = cloneSlice(a.RiskMatrix)
		a.LongTermImpact = cloneSlice(a.LongTermImpact)
		a.RiskNotes = cloneSlice(a.RiskNotes)
		out.Analytics = &a
	}
	if r.Strategy != nil {
		s := *r.Strategy
		s.Schedule = cloneSlice(s.Schedule)
		s.Pivots = cloneSlice(s.Pivots)
		for i := range s.Pivots {
			if ch := s.Pivots[i].Changes; ch != nil {
				c := *ch
				s.Pivots[i].Changes = &c
			}
		}
		out.Strategy = &s
	}
	return out
}
