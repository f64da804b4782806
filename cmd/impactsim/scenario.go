package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"impactsim/internal/scenario"
)

// scenarioCmd manages the persisted scenario slot
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Save and load the single scenario slot",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save [project-file]",
	Short: "Save a project description into the slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := loadProjectFile(args[0])
		if err != nil {
			return err
		}
		store, err := scenario.Open(cfg.Workspace)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(project); err != nil {
			return err
		}
		fmt.Printf("Saved scenario %q\n", project.Title)
		return nil
	},
}

var scenarioLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Print the saved scenario as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scenario.Open(cfg.Workspace)
		if err != nil {
			return err
		}
		defer store.Close()
		project, found, err := store.Load()
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no saved scenario")
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(project)
	},
}

func init() {
	scenarioCmd.AddCommand(scenarioSaveCmd)
	scenarioCmd.AddCommand(scenarioLoadCmd)
}
