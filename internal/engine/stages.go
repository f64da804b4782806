package engine

import (
	"context"

	"impactsim/internal/decode"
	"impactsim/internal/prompt"
	"impactsim/internal/sim"
)

// Stage names used in error reporting and logs.
const (
	StageSummary   = "summary"
	StageAnalytics = "analytics"
	StageStrategy  = "strategy"
)

// Each stage caller issues exactly one request: build the stage prompt,
// send it, decode the response against the declared shape. Failures are
// tagged by kind; a request failure and a decode failure are never
// conflated.

func (o *Orchestrator) checkCredential(stage string) *sim.StageError {
	if _, ok := o.creds.Resolve(); !ok {
		return &sim.StageError{
			Kind:   sim.ErrMissingCredential,
			Stage:  stage,
			Detail: "no API credential configured",
		}
	}
	return nil
}

func (o *Orchestrator) callSummary(ctx context.Context, project sim.ProjectDescription) (sim.SummaryResult, *sim.StageError) {
	var out sim.SummaryResult
	if serr := o.checkCredential(StageSummary); serr != nil {
		return out, serr
	}
	p := prompt.Summary(project)
	raw, err := o.client.GenerateJSON(ctx, p.Instruction, p.Schema)
	if err != nil {
		return out, &sim.StageError{Kind: sim.ErrNetworkFailure, Stage: StageSummary, Detail: err.Error(), Err: err}
	}
	if err := decode.Decode(raw, p.Schema, &out); err != nil {
		return out, &sim.StageError{Kind: sim.ErrDecodeFailure, Stage: StageSummary, Detail: err.Error(), Err: err}
	}
	return out, nil
}

func (o *Orchestrator) callAnalytics(ctx context.Context, project sim.ProjectDescription, summary sim.SummaryResult) (sim.AnalyticsResult, *sim.StageError) {
	var out sim.AnalyticsResult
	if serr := o.checkCredential(StageAnalytics); serr != nil {
		return out, serr
	}
	p := prompt.Analytics(project, summary)
	raw, err := o.client.GenerateJSON(ctx, p.Instruction, p.Schema)
	if err != nil {
		return out, &sim.StageError{Kind: sim.ErrNetworkFailure, Stage: StageAnalytics, Detail: err.Error(), Err: err}
	}
	if err := decode.Decode(raw, p.Schema, &out); err != nil {
		return out, &sim.StageError{Kind: sim.ErrDecodeFailure, Stage: StageAnalytics, Detail: err.Error(), Err: err}
	}
	return out, nil
}

func (o *Orchestrator) callStrategy(ctx context.Context, project sim.ProjectDescription, summary sim.SummaryResult, analytics sim.AnalyticsResult) (sim.StrategyResult, *sim.StageError) {
	var out sim.StrategyResult
	if serr := o.checkCredential(StageStrategy); serr != nil {
		return out, serr
	}
	p := prompt.Strategy(project, summary, analytics)
	raw, err := o.client.GenerateJSON(ctx, p.Instruction, p.Schema)
	if err != nil {
		return out, &sim.StageError{Kind: sim.ErrNetworkFailure, Stage: StageStrategy, Detail: err.Error(), Err: err}
	}
	if err := decode.Decode(raw, p.Schema, &out); err != nil {
		return out, &sim.StageError{Kind: sim.ErrDecodeFailure, Stage: StageStrategy, Detail: err.Error(), Err: err}
	}
	return out, nil
}
