package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"impactsim/internal/engine"
	"impactsim/internal/gemini"
	"impactsim/internal/sim"
)

var (
	summaryOnly bool
	runJSON     bool
)

// runCmd executes a one-shot simulation from a project file
var runCmd = &cobra.Command{
	Use:   "run [project-file]",
	Short: "Run a simulation for a project description file",
	Long: `Loads a project description (JSON or YAML) and runs the staged
pipeline. By default the command prints the summary as soon as stage 1
resolves and then waits for the background stages before rendering the
full report. With --summary-only it exits after stage 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "Exit after the summary stage")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Emit the raw result as JSON")
}

func loadProjectFile(path string) (sim.ProjectDescription, error) {
	var p sim.ProjectDescription
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read project file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// Round-trip through JSON so the camelCase field names used in
		// the JSON form work unchanged in YAML files.
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return p, fmt.Errorf("failed to parse project file: %w", err)
		}
		jsonData, err := json.Marshal(raw)
		if err != nil {
			return p, err
		}
		if err := json.Unmarshal(jsonData, &p); err != nil {
			return p, fmt.Errorf("failed to parse project file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("failed to parse project file: %w", err)
		}
	}
	return p, nil
}

func newOrchestrator() *engine.Orchestrator {
	client := gemini.New(gemini.Config{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		Timeout:         cfg.GetLLMTimeout(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	})
	return engine.New(client, cfg.Credentials())
}

func runSimulation(cmd *cobra.Command, args []string) error {
	project, err := loadProjectFile(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	orch := newOrchestrator()

	logger.Info("starting simulation",
		zap.String("title", project.Title),
		zap.String("model", cfg.LLM.Model))

	result, err := orch.Run(ctx, project)
	if err != nil {
		return err
	}

	if summaryOnly {
		return renderResult(result, orch.BackgroundErr(), runJSON)
	}

	fmt.Printf("Summary ready (score %.0f). Waiting for analytics and strategy...\n",
		result.Summary.OverallScore)
	orch.Wait()

	snap := orch.Snapshot()
	if snap.Result == nil {
		return fmt.Errorf("simulation produced no result")
	}
	return renderResult(snap.Result, orch.BackgroundErr(), runJSON)
}

func renderResult(result *sim.SimulationResult, bgErr *sim.StageError, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	renderReport(os.Stdout, result)
	if bgErr != nil {
		fmt.Fprintf(os.Stderr, "\nwarning: %s stage failed (%s); charts shown empty\n",
			bgErr.Stage, bgErr.Kind)
	}
	return nil
}
