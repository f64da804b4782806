package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetLogging() {
	CloseAll()
	CloseAudit()
	logsDir = ""
	settings = Settings{}
	logLevel = LevelInfo
}

func readCategoryLog(t *testing.T, workspace string, cat Category) string {
	t.Helper()
	date := time.Now().Format("2006-01-02")
	path := filepath.Join(workspace, ".impactsim", "logs", date+"_"+string(cat)+".log")
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

func TestInitializeCreatesLogsDir(t *testing.T) {
	defer resetLogging()
	ws := t.TempDir()

	if err := Initialize(ws, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(ws, ".impactsim", "logs")); err != nil {
		t.Fatalf("logs dir not created: %v", err)
	}
}

func TestCategoryWritesToOwnFile(t *testing.T) {
	defer resetLogging()
	ws := t.TempDir()
	if err := Initialize(ws, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatal(err)
	}

	API("gemini call took %dms", 120)
	Sim("run started")
	CloseAll()

	apiLog := readCategoryLog(t, ws, CategoryAPI)
	if !strings.Contains(apiLog, "gemini call took 120ms") {
		t.Errorf("api log missing entry: %q", apiLog)
	}
	simLog := readCategoryLog(t, ws, CategorySim)
	if !strings.Contains(simLog, "run started") {
		t.Errorf("sim log missing entry: %q", simLog)
	}
	if strings.Contains(apiLog, "run started") {
		t.Error("sim entry leaked into api log")
	}
}

func TestDisabledDebugModeIsNoOp(t *testing.T) {
	defer resetLogging()
	ws := t.TempDir()
	if err := Initialize(ws, Settings{DebugMode: false}); err != nil {
		t.Fatal(err)
	}

	API("should not be written")
	CloseAll()

	if log := readCategoryLog(t, ws, CategoryAPI); log != "" {
		t.Errorf("expected no log output, got %q", log)
	}
}

func TestDisabledCategorySkipped(t *testing.T) {
	defer resetLogging()
	ws := t.TempDir()
	err := Initialize(ws, Settings{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"api": false},
	})
	if err != nil {
		t.Fatal(err)
	}

	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api category should be disabled")
	}
	if !IsCategoryEnabled(CategorySim) {
		t.Error("sim category should default to enabled")
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	defer resetLogging()
	ws := t.TempDir()
	if err := Initialize(ws, Settings{DebugMode: true, Level: "info"}); err != nil {
		t.Fatal(err)
	}

	APIDebug("debug entry")
	API("info entry")
	CloseAll()

	apiLog := readCategoryLog(t, ws, CategoryAPI)
	if strings.Contains(apiLog, "debug entry") {
		t.Error("debug entry written at info level")
	}
	if !strings.Contains(apiLog, "info entry") {
		t.Error("info entry missing")
	}
}

func TestAuditTrailRoundTrip(t *testing.T) {
	defer resetLogging()
	ws := t.TempDir()
	if err := InitializeAudit(ws); err != nil {
		t.Fatal(err)
	}

	Audit(AuditRunStart, "run-1", "", map[string]interface{}{"title": "Solar Microgrids"})
	Audit(AuditStageComplete, "run-1", "summary", nil)
	CloseAudit()

	f, err := os.Open(filepath.Join(ws, ".impactsim", "logs", "audit.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var events []AuditEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("bad audit line: %v", err)
		}
		events = append(events, ev)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != AuditRunStart || events[0].RunID != "run-1" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Stage != "summary" {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestAuditWithoutInitializeIsNoOp(t *testing.T) {
	defer resetLogging()
	Audit(AuditRunStart, "run-x", "", nil)
}
