package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// The audit trail is a JSONL file recording every run and stage
// transition, one event per line. Unlike category logs it is written
// whenever logging is initialized, not only in debug mode, because it is
// the record used to reconstruct what a past run did.

// AuditEventType labels an audit event.
type AuditEventType string

const (
	AuditRunStart      AuditEventType = "run_start"
	AuditStageStart    AuditEventType = "stage_start"
	AuditStageComplete AuditEventType = "stage_complete"
	AuditStageError    AuditEventType = "stage_error"
	AuditRunSettled    AuditEventType = "run_settled"
)

// AuditEvent is one line of the audit trail.
type AuditEvent struct {
	Time   time.Time              `json:"time"`
	Type   AuditEventType         `json:"type"`
	RunID  string                 `json:"runId,omitempty"`
	Stage  string                 `json:"stage,omitempty"`
	Detail map[string]interface{} `json:"detail,omitempty"`
}

var (
	auditMu   sync.Mutex
	auditFile *os.File
)

// InitializeAudit opens (or creates) the audit trail under the workspace
// dot-directory. Safe to skip; Audit becomes a no-op.
func InitializeAudit(workspace string) error {
	dir := filepath.Join(workspace, ".impactsim", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "audit.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	auditMu.Lock()
	if auditFile != nil {
		auditFile.Close()
	}
	auditFile = f
	auditMu.Unlock()
	return nil
}

// Audit appends one event to the trail. Events are best-effort; a write
// failure is swallowed rather than failing the run being audited.
func Audit(eventType AuditEventType, runID, stage string, detail map[string]interface{}) {
	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile == nil {
		return
	}
	line, err := json.Marshal(AuditEvent{
		Time:   time.Now().UTC(),
		Type:   eventType,
		RunID:  runID,
		Stage:  stage,
		Detail: detail,
	})
	if err != nil {
		return
	}
	auditFile.Write(append(line, '\n'))
}

// CloseAudit closes the audit trail file.
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}
