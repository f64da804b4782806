package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanSimulateRequiresTitle(t *testing.T) {
	p := ProjectDescription{}
	require.Error(t, p.CanSimulate())

	p.Title = "Mobile Health Units"
	require.NoError(t, p.CanSimulate())
}

func TestCloneCopiesHistory(t *testing.T) {
	p := ProjectDescription{
		Title:           "Mobile Health Units",
		StrategyHistory: []string{"first"},
	}
	c := p.Clone()
	c.StrategyHistory[0] = "mutated"
	assert.Equal(t, "first", p.StrategyHistory[0])
}

func TestApplyPivotOverwritesOnlyNamedFields(t *testing.T) {
	p := ProjectDescription{
		Title:           "Mobile Health Units",
		Location:        "Northern Kenya",
		Budget:          "300000 USD",
		TechnologyLevel: "High Tech",
	}
	p.ApplyPivot(PivotSuggestion{
		Title:        "Appropriate Tech",
		Modification: "swap satellite links for SMS reporting",
		Changes: &ProjectChanges{
			TechnologyLevel: "Low Tech",
			Budget:          "220000 USD",
		},
	})

	assert.Equal(t, "Low Tech", p.TechnologyLevel)
	assert.Equal(t, "220000 USD", p.Budget)
	assert.Equal(t, "Mobile Health Units", p.Title)
	assert.Equal(t, "Northern Kenya", p.Location)
}

func TestApplyPivotAppendsHistory(t *testing.T) {
	p := ProjectDescription{Title: "Mobile Health Units"}

	p.ApplyPivot(PivotSuggestion{Title: "Local Hiring", Modification: "staff clinics with local nurses"})
	p.ApplyPivot(PivotSuggestion{Title: "Appropriate Tech", Modification: "swap satellite links for SMS"})

	require.Len(t, p.StrategyHistory, 2)
	assert.Equal(t, "Local Hiring: staff clinics with local nurses", p.StrategyHistory[0])
	assert.Equal(t, "Appropriate Tech: swap satellite links for SMS", p.StrategyHistory[1])
}

func TestApplyPivotWithoutChangesStillRecordsHistory(t *testing.T) {
	p := ProjectDescription{Title: "Mobile Health Units", Budget: "300000 USD"}
	p.ApplyPivot(PivotSuggestion{Title: "Messaging", Modification: "reframe outreach materials"})

	assert.Equal(t, "300000 USD", p.Budget)
	require.Len(t, p.StrategyHistory, 1)
}
