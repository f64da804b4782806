package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"impactsim/internal/scenario"
)

// statusCmd shows the effective configuration
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and credential status",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, hasKey := cfg.Credentials().Resolve()

		slotState := "empty"
		if store, err := scenario.Open(cfg.Workspace); err == nil {
			if _, found, err := store.Load(); err == nil && found {
				slotState = "saved"
			}
			store.Close()
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Setting", "Value"})
		t.AppendRow(table.Row{"Workspace", cfg.Workspace})
		t.AppendRow(table.Row{"Model", cfg.LLM.Model})
		t.AppendRow(table.Row{"Base URL", cfg.LLM.BaseURL})
		t.AppendRow(table.Row{"LLM timeout", cfg.GetLLMTimeout().String()})
		t.AppendRow(table.Row{"Credential", boolWord(hasKey, "configured", "missing")})
		t.AppendRow(table.Row{"Server addr", cfg.Server.Addr})
		t.AppendRow(table.Row{"Scenario slot", slotState})
		t.Render()

		if !hasKey {
			fmt.Println("\nSet GEMINI_API_KEY (or llm.api_key in the config file) to run simulations.")
		}
		return nil
	},
}

func boolWord(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
