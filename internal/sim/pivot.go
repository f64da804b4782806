package sim

import "fmt"

// ApplyPivot applies a pivot suggestion to the project in place: every
// non-empty field in Changes overwrites the corresponding project field,
// and one entry describing the pivot is appended to the strategy history.
// All other fields are left untouched.
func (p *ProjectDescription) ApplyPivot(pivot PivotSuggestion) {
	if ch := pivot.Changes; ch != nil {
		apply := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		apply(&p.Title, ch.Title)
		apply(&p.Location, ch.Location)
		apply(&p.TargetAudience, ch.TargetAudience)
		apply(&p.Sector, ch.Sector)
		apply(&p.Budget, ch.Budget)
		apply(&p.Duration, ch.Duration)
		apply(&p.LocalPartner, ch.LocalPartner)
		apply(&p.TechnologyLevel, ch.TechnologyLevel)
		apply(&p.FundingSource, ch.FundingSource)
		apply(&p.TeamExperience, ch.TeamExperience)
		apply(&p.Description, ch.Description)
	}
	p.StrategyHistory = append(p.StrategyHistory,
		fmt.Sprintf("%s: %s", pivot.Title, pivot.Modification))
}
