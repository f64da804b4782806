// Package engine runs the three-stage simulation pipeline: one awaited
// summary call, then analytics and strategy strictly in sequence in the
// background, merging each partial result as it arrives. A background
// failure leaves the run a partial success; only a stage-1 failure fails
// the run.
package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"impactsim/internal/logging"
	"impactsim/internal/sim"
)

// State is the orchestrator's run state.
type State string

const (
	StateIdle          State = "idle"
	StateStage1Pending State = "stage1_pending"
	StatePartialReady  State = "partial_ready"
	StateFullyReady    State = "fully_ready"
	StateFailed        State = "failed"
)

// Orchestrator owns the run state machine. A rerun from any state
// discards the previous result and error; each run gets a new epoch so a
// stale in-flight background stage can never merge into a newer run.
type Orchestrator struct {
	client Client
	creds  CredentialSource

	mu        sync.Mutex
	state     State
	epoch     uint64
	runID     string
	result    sim.SimulationResult
	hasResult bool
	runErr    *sim.StageError
	bgErr     *sim.StageError
	done      chan struct{}
}

// New creates an orchestrator. The credential source is injected as a
// capability rather than read ambiently, so tests stub it directly.
func New(client Client, creds CredentialSource) *Orchestrator {
	return &Orchestrator{client: client, creds: creds, state: StateIdle}
}

// Snapshot is a point-in-time view of the current run.
type Snapshot struct {
	State  State                 `json:"state"`
	RunID  string                `json:"runId,omitempty"`
	Result *sim.SimulationResult `json:"result,omitempty"`
	Err    *sim.StageError       `json:"-"`
}

// Snapshot returns the current state and a copy of the merged result.
// Err carries only the visible stage-1 failure; background failures stay
// in the logs.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	snap := Snapshot{State: o.state, RunID: o.runID, Err: o.runErr}
	if o.hasResult {
		r := o.result.Clone()
		snap.Result = &r
	}
	return snap
}

// BackgroundErr returns the recorded background-stage failure of the
// current run, if any. It is never surfaced as a run error.
func (o *Orchestrator) BackgroundErr() *sim.StageError {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bgErr
}

// Wait blocks until the current run's background stages have settled.
func (o *Orchestrator) Wait() {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Run starts a new run. It returns once stage 1 has resolved: on success
// the stage-1 result is returned immediately and the remaining stages
// continue in the background; on failure the run transitions to Failed
// and no background stage is attempted.
func (o *Orchestrator) Run(ctx context.Context, project sim.ProjectDescription) (*sim.SimulationResult, error) {
	if err := project.CanSimulate(); err != nil {
		return nil, err
	}

	snapshot := project.Clone()
	done := make(chan struct{})

	o.mu.Lock()
	o.epoch++
	epoch := o.epoch
	o.runID = uuid.NewString()
	runID := o.runID
	o.state = StateStage1Pending
	o.result = sim.SimulationResult{}
	o.hasResult = false
	o.runErr = nil
	o.bgErr = nil
	o.done = done
	o.mu.Unlock()

	logging.Sim("[%s] run started epoch=%d title=%q", runID, epoch, snapshot.Title)
	logging.Audit(logging.AuditRunStart, runID, "", map[string]interface{}{"title": snapshot.Title})

	logging.Audit(logging.AuditStageStart, runID, StageSummary, nil)
	summary, serr := o.callSummary(ctx, snapshot)
	if serr != nil {
		o.mu.Lock()
		if o.epoch == epoch {
			o.state = StateFailed
			o.runErr = serr
		}
		o.mu.Unlock()
		close(done)
		logging.SimError("[%s] stage 1 failed: %v", runID, serr)
		logging.Audit(logging.AuditStageError, runID, StageSummary, map[string]interface{}{"kind": string(serr.Kind)})
		return nil, serr
	}

	res := sim.SimulationResult{Summary: summary}

	o.mu.Lock()
	if o.epoch != epoch {
		// A rerun started while stage 1 was in flight; do not install.
		o.mu.Unlock()
		close(done)
		logging.SimWarn("[%s] stale stage-1 result discarded (epoch %d)", runID, epoch)
		out := res.Clone()
		return &out, nil
	}
	o.result = res
	o.hasResult = true
	o.state = StatePartialReady
	o.mu.Unlock()

	logging.Sim("[%s] stage 1 ready score=%.0f", runID, summary.OverallScore)
	logging.Audit(logging.AuditStageComplete, runID, StageSummary, map[string]interface{}{"overallScore": summary.OverallScore})

	// Background stages outlive the caller's request context.
	go o.runBackground(context.WithoutCancel(ctx), epoch, runID, snapshot, summary, done)

	out := res.Clone()
	return &out, nil
}

func (o *Orchestrator) runBackground(ctx context.Context, epoch uint64, runID string, project sim.ProjectDescription, summary sim.SummaryResult, done chan struct{}) {
	defer close(done)

	logging.Audit(logging.AuditStageStart, runID, StageAnalytics, nil)
	analytics, serr := o.callAnalytics(ctx, project, summary)
	if serr != nil {
		o.settlePartial(epoch, runID, serr)
		return
	}
	if !o.mergeAnalytics(epoch, analytics) {
		logging.SimWarn("[%s] stale analytics result discarded (epoch %d)", runID, epoch)
		return
	}
	logging.Sim("[%s] analytics merged", runID)
	logging.Audit(logging.AuditStageComplete, runID, StageAnalytics, nil)

	logging.Audit(logging.AuditStageStart, runID, StageStrategy, nil)
	strategy, serr := o.callStrategy(ctx, project, summary, analytics)
	if serr != nil {
		o.settlePartial(epoch, runID, serr)
		return
	}
	if !o.mergeStrategy(epoch, strategy) {
		logging.SimWarn("[%s] stale strategy result discarded (epoch %d)", runID, epoch)
		return
	}
	logging.Sim("[%s] run fully ready", runID)
	logging.Audit(logging.AuditStageComplete, runID, StageStrategy, nil)
	logging.Audit(logging.AuditRunSettled, runID, "", map[string]interface{}{"state": string(StateFullyReady)})
}

// settlePartial records a background failure without surfacing it: the
// run stays PartialReady, and still-absent field groups are backfilled
// with empty ones so rendering can stop showing loading placeholders.
func (o *Orchestrator) settlePartial(epoch uint64, runID string, serr *sim.StageError) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		// A superseded run's failure settles nothing.
		logging.SimWarn("[%s] stale background failure discarded (epoch %d): %v", runID, epoch, serr)
		return
	}
	logging.SimError("[%s] background stage failed, run left partial: %v", runID, serr)
	logging.Audit(logging.AuditStageError, runID, serr.Stage, map[string]interface{}{"kind": string(serr.Kind)})
	logging.Audit(logging.AuditRunSettled, runID, "", map[string]interface{}{"state": string(StatePartialReady)})
	o.bgErr = serr
	o.result.BackfillEmpty()
}

func (o *Orchestrator) mergeAnalytics(epoch uint64, a sim.AnalyticsResult) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		return false
	}
	o.result.MergeAnalytics(a)
	return true
}

func (o *Orchestrator) mergeStrategy(epoch uint64, s sim.StrategyResult) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		return false
	}
	o.result.MergeStrategy(s)
	o.state = StateFullyReady
	return true
}
