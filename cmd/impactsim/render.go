package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"impactsim/internal/sim"
)

// renderReport prints the human-readable simulation report. Sections for
// stages that have not resolved yet are skipped, not faked.
func renderReport(w io.Writer, result *sim.SimulationResult) {
	renderSummary(w, result.Summary)
	if result.Analytics != nil {
		renderAnalytics(w, result.Analytics)
	}
	if result.Strategy != nil {
		renderStrategy(w, result.Strategy)
	}
}

func renderSummary(w io.Writer, s sim.SummaryResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Impact Summary")
	t.AppendHeader(table.Row{"Metric", "Score"})
	t.AppendRow(table.Row{"Overall", fmt.Sprintf("%.0f / 100", s.OverallScore)})
	t.AppendRow(table.Row{"Community Sentiment", fmt.Sprintf("%.0f / 100", s.CommunitySentiment)})
	t.AppendRow(table.Row{"Sustainability", fmt.Sprintf("%.0f / 100", s.SustainabilityScore)})
	t.Render()

	fmt.Fprintf(w, "\n%s\n", s.Narrative)
	if len(s.SuccessFactors) > 0 {
		fmt.Fprintln(w, "\nSuccess factors:")
		for _, f := range s.SuccessFactors {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}

func renderAnalytics(w io.Writer, a *sim.AnalyticsResult) {
	if len(a.Metrics) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Feasibility Metrics")
		t.AppendHeader(table.Row{"Category", "Score", "Reasoning"})
		for _, m := range a.Metrics {
			t.AppendRow(table.Row{m.Category, fmt.Sprintf("%.0f", m.Score), m.Reasoning})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(a.Timeline) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Timeline")
		t.AppendHeader(table.Row{"Month", "Event", "Sentiment"})
		for _, ev := range a.Timeline {
			t.AppendRow(table.Row{ev.Month, ev.Title, fmt.Sprintf("%.0f", ev.SentimentScore)})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(a.BudgetBreakdown) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Budget Breakdown")
		t.AppendHeader(table.Row{"Category", "Share"})
		for _, b := range a.BudgetBreakdown {
			t.AppendRow(table.Row{b.Category, fmt.Sprintf("%.0f%%", b.Percentage)})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(a.Stakeholders) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Stakeholders")
		t.AppendHeader(table.Row{"Group", "Sentiment", "Influence"})
		for _, s := range a.Stakeholders {
			t.AppendRow(table.Row{s.Group, fmt.Sprintf("%+.0f", s.Sentiment), s.Influence})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(a.RiskMatrix) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Risk Matrix")
		t.AppendHeader(table.Row{"Risk", "Likelihood", "Severity"})
		for _, r := range a.RiskMatrix {
			t.AppendRow(table.Row{r.Risk, r.Likelihood, r.Severity})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(a.LongTermImpact) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Long-Term Impact")
		t.AppendHeader(table.Row{"Year", "Social", "Economic", "Environmental"})
		for _, p := range a.LongTermImpact {
			t.AppendRow(table.Row{p.Year,
				fmt.Sprintf("%.0f", p.Social),
				fmt.Sprintf("%.0f", p.Economic),
				fmt.Sprintf("%.0f", p.Environmental)})
		}
		t.Render()
		fmt.Fprintln(w)
	}
}

func renderStrategy(w io.Writer, s *sim.StrategyResult) {
	if len(s.Schedule) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Schedule")
		t.AppendHeader(table.Row{"Task", "Start", "Months", "Type"})
		for _, item := range s.Schedule {
			t.AppendRow(table.Row{item.Task, item.StartMonth, item.DurationMonths, item.Type})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	for i, p := range s.Pivots {
		fmt.Fprintf(w, "Pivot %d: %s\n", i+1, p.Title)
		fmt.Fprintf(w, "  Change:    %s\n", p.Modification)
		fmt.Fprintf(w, "  Rationale: %s\n", p.Rationale)
	}
}
