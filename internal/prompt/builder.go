// Package prompt maps a project description (plus any earlier-stage
// results) into stage-specific instruction strings and their declared
// output shapes. Builders are pure: identical inputs produce identical
// instructions, with no time- or randomness-dependent content.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"impactsim/internal/sim"
)

// HistoryWindow bounds how many strategy-history entries are embedded
// verbatim. The log only grows, so older entries collapse to a count
// line to keep request size deterministic.
const HistoryWindow = 5

// Prompt pairs an instruction string with the declared output shape the
// service is asked (and later locally required) to honor.
type Prompt struct {
	Instruction string
	Schema      map[string]interface{}
}

// Summary builds the stage-1 prompt: core fields plus strategy history,
// with scoring heuristics stated as plain-text instructions. The model,
// not this code, applies the heuristics.
func Summary(p sim.ProjectDescription) Prompt {
	var b strings.Builder
	b.WriteString("Analyze this NGO project proposal and simulate its lifecycle.\n\n")
	writeProjectFields(&b, p)
	writeHistory(&b, p.StrategyHistory)

	b.WriteString("\nScoring heuristics:\n")
	b.WriteString("- Start from a baseline overall score of 50.\n")
	b.WriteString("- Penalty: High Tech technology level combined with a team experience of 'None' or under 1 year.\n")
	b.WriteString("- Penalty: no named local partner in a rural or high-risk location.\n")
	b.WriteString("- Penalty: duration under 6 months for infrastructure-heavy sectors.\n")
	b.WriteString("- Bonus: an established local partner with community ties.\n")
	b.WriteString("- Bonus: funding source matched to the project duration.\n")
	b.WriteString("- Consider corruption, culture, and logistics for the location.\n")

	b.WriteString("\nReturn ONLY a JSON object with: overallScore (0-100), communitySentiment (0-100), sustainabilityScore (0-100), narrative (string), successFactors (array of strings).\n")

	return Prompt{Instruction: b.String(), Schema: SummarySchema()}
}

// Analytics builds the stage-2 prompt. The stage-1 narrative and scores
// are embedded as context; the request that values stay consistent with
// them is advisory and never verified here.
func Analytics(p sim.ProjectDescription, summary sim.SummaryResult) Prompt {
	var b strings.Builder
	b.WriteString("You already assessed this NGO project proposal. Produce the detailed analytics for it.\n\n")
	writeProjectFields(&b, p)

	b.WriteString("\nPrior assessment:\n")
	fmt.Fprintf(&b, "- Overall score: %.0f/100\n", summary.OverallScore)
	fmt.Fprintf(&b, "- Community sentiment: %.0f/100\n", summary.CommunitySentiment)
	fmt.Fprintf(&b, "- Sustainability: %.0f/100\n", summary.SustainabilityScore)
	fmt.Fprintf(&b, "- Narrative: %s\n", summary.Narrative)

	b.WriteString("\nKeep all values logically consistent with the prior assessment.\n")
	b.WriteString("Return ONLY a JSON object with: metrics (category, score 0-100, reasoning), timeline (month, title, description, sentimentScore 0-100), budgetBreakdown (category, percentage), stakeholderAnalysis (group, sentiment -100 to 100, influence High|Medium|Low), riskAnalysis (risk, likelihood 1-10, severity 1-10), longTermImpact (year, social, economic, environmental), risks (array of strings).\n")

	return Prompt{Instruction: b.String(), Schema: AnalyticsSchema()}
}

// Strategy builds the stage-3 prompt. Stage-1 score and a stage-2
// risk/metric digest are embedded so suggested pivots target the metrics
// flagged as weak.
func Strategy(p sim.ProjectDescription, summary sim.SummaryResult, analytics sim.AnalyticsResult) Prompt {
	var b strings.Builder
	b.WriteString("You already assessed and analyzed this NGO project proposal. Produce an implementation schedule and pivot suggestions.\n\n")
	writeProjectFields(&b, p)

	b.WriteString("\nPrior assessment:\n")
	fmt.Fprintf(&b, "- Overall score: %.0f/100\n", summary.OverallScore)

	weak := weakMetrics(summary)
	weak = append(weak, weakCategories(analytics.Metrics)...)
	if len(weak) > 0 {
		fmt.Fprintf(&b, "- Weak metrics to target: %s\n", strings.Join(weak, ", "))
	}
	if risks := topRisks(analytics.RiskMatrix, 3); len(risks) > 0 {
		b.WriteString("- Highest risks:\n")
		for _, r := range risks {
			fmt.Fprintf(&b, "  - %s (likelihood %d, severity %d)\n", r.Risk, r.Likelihood, r.Severity)
		}
	}

	b.WriteString("\nEach pivot must target one of the weak metrics or highest risks above, and may include a 'changes' object of replacement field values for the project.\n")
	b.WriteString("Return ONLY a JSON object with: schedule (task, startMonth, durationMonths, type planning|execution|milestone), pivots (title, modification, rationale, optional changes).\n")

	return Prompt{Instruction: b.String(), Schema: StrategySchema()}
}

func writeProjectFields(b *strings.Builder, p sim.ProjectDescription) {
	fmt.Fprintf(b, "Project: %s\n", p.Title)
	fmt.Fprintf(b, "Location: %s (%s)\n", p.Location, p.Sector)
	fmt.Fprintf(b, "Target audience: %s\n", p.TargetAudience)
	fmt.Fprintf(b, "Budget: %s (%s)\n", p.Budget, p.FundingSource)
	fmt.Fprintf(b, "Duration: %s\n", p.Duration)
	fmt.Fprintf(b, "Technology level: %s\n", p.TechnologyLevel)
	fmt.Fprintf(b, "Local partner: %s\n", p.LocalPartner)
	fmt.Fprintf(b, "Team experience: %s\n", p.TeamExperience)
	fmt.Fprintf(b, "Description: %s\n", p.Description)
}

// writeHistory embeds the most recent HistoryWindow entries verbatim and
// collapses anything older into a count line.
func writeHistory(b *strings.Builder, history []string) {
	if len(history) == 0 {
		return
	}
	b.WriteString("\nApplied strategy history:\n")
	if omitted := len(history) - HistoryWindow; omitted > 0 {
		fmt.Fprintf(b, "(%d earlier strategy entries omitted)\n", omitted)
		history = history[omitted:]
	}
	for _, entry := range history {
		fmt.Fprintf(b, "- %s\n", entry)
	}
}

// weakMetrics names the stage-1 scores below 60, in a fixed order.
func weakMetrics(s sim.SummaryResult) []string {
	var weak []string
	if s.OverallScore < 60 {
		weak = append(weak, fmt.Sprintf("overall feasibility (%.0f)", s.OverallScore))
	}
	if s.CommunitySentiment < 60 {
		weak = append(weak, fmt.Sprintf("community sentiment (%.0f)", s.CommunitySentiment))
	}
	if s.SustainabilityScore < 60 {
		weak = append(weak, fmt.Sprintf("sustainability (%.0f)", s.SustainabilityScore))
	}
	return weak
}

// weakCategories names the per-category feasibility metrics scoring
// below 60, in input order.
func weakCategories(metrics []sim.Metric) []string {
	var weak []string
	for _, m := range metrics {
		if m.Score < 60 {
			weak = append(weak, fmt.Sprintf("%s (%.0f)", m.Category, m.Score))
		}
	}
	return weak
}

// topRisks returns the n entries with the highest likelihood*severity,
// ordered deterministically (score desc, then input order).
func topRisks(matrix []sim.RiskEntry, n int) []sim.RiskEntry {
	if len(matrix) == 0 {
		return nil
	}
	sorted := make([]sim.RiskEntry, len(matrix))
	copy(sorted, matrix)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Likelihood*sorted[i].Severity > sorted[j].Likelihood*sorted[j].Severity
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
