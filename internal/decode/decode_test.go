package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactsim/internal/prompt"
	"impactsim/internal/sim"
)

const summaryResponse = `{
	"overallScore": 68,
	"communitySentiment": 74,
	"sustainabilityScore": 55,
	"narrative": "A promising project with sustainability concerns.",
	"successFactors": ["strong local partner", "matched funding"]
}`

func TestDecodeBareObject(t *testing.T) {
	var got sim.SummaryResult
	require.NoError(t, Decode(summaryResponse, prompt.SummarySchema(), &got))
	assert.Equal(t, float64(68), got.OverallScore)
	assert.Equal(t, float64(74), got.CommunitySentiment)
	assert.Len(t, got.SuccessFactors, 2)
}

func TestDecodeFencedObject(t *testing.T) {
	raw := "```json\n" + summaryResponse + "\n```"
	var got sim.SummaryResult
	require.NoError(t, Decode(raw, prompt.SummarySchema(), &got))
	assert.Equal(t, "A promising project with sustainability concerns.", got.Narrative)
}

func TestDecodeProseWrappedObject(t *testing.T) {
	raw := "Here is the requested assessment:\n\n" + summaryResponse + "\n\nHope that helps!"
	var got sim.SummaryResult
	require.NoError(t, Decode(raw, prompt.SummarySchema(), &got))
	assert.Equal(t, float64(55), got.SustainabilityScore)
}

func TestDecodeNoObjectFails(t *testing.T) {
	var got sim.SummaryResult
	err := Decode("I cannot assess this project.", prompt.SummarySchema(), &got)
	require.ErrorIs(t, err, ErrNoObject)
}

func TestDecodeMultipleObjectsFails(t *testing.T) {
	var got sim.SummaryResult
	err := Decode(summaryResponse+"\n"+summaryResponse, prompt.SummarySchema(), &got)
	require.ErrorIs(t, err, ErrAmbiguous)
}

func TestDecodeMissingRequiredFieldFails(t *testing.T) {
	raw := `{"overallScore": 68, "narrative": "incomplete"}`
	var got sim.SummaryResult
	err := Decode(raw, prompt.SummarySchema(), &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestDecodeOutOfRangeScoreFails(t *testing.T) {
	raw := `{
		"overallScore": 140,
		"communitySentiment": 74,
		"sustainabilityScore": 55,
		"narrative": "scores out of range",
		"successFactors": []
	}`
	var got sim.SummaryResult
	require.Error(t, Decode(raw, prompt.SummarySchema(), &got))
}

func TestDecodeWrongTypeFails(t *testing.T) {
	raw := `{
		"overallScore": "high",
		"communitySentiment": 74,
		"sustainabilityScore": 55,
		"narrative": "type mismatch",
		"successFactors": []
	}`
	var got sim.SummaryResult
	require.Error(t, Decode(raw, prompt.SummarySchema(), &got))
}

func TestDecodeNilSchemaSkipsValidation(t *testing.T) {
	raw := `{"anything": "goes"}`
	var got map[string]interface{}
	require.NoError(t, Decode(raw, nil, &got))
	assert.Equal(t, "goes", got["anything"])
}

func TestDecodeStrategyScheduleTypeEnum(t *testing.T) {
	raw := `{
		"schedule": [{"task": "Survey", "startMonth": 1, "durationMonths": 2, "type": "sprint"}],
		"pivots": []
	}`
	var got sim.StrategyResult
	err := Decode(raw, prompt.StrategySchema(), &got)
	require.Error(t, err)
}

func TestDecodeAnalyticsResponse(t *testing.T) {
	raw := `{
		"metrics": [{"category": "Community Buy-In", "score": 45, "reasoning": "no named local partner"}],
		"timeline": [{"month": "Month 1", "title": "Kickoff", "description": "Community meetings", "sentimentScore": 60}],
		"budgetBreakdown": [{"category": "Staff", "percentage": 40}],
		"stakeholderAnalysis": [{"group": "Village elders", "sentiment": 35, "influence": "High"}],
		"riskAnalysis": [{"risk": "Supply delays", "likelihood": 6, "severity": 5}],
		"longTermImpact": [{"year": "Year 1", "social": 20, "economic": 10, "environmental": 5}],
		"risks": ["Supply delays"]
	}`
	var got sim.AnalyticsResult
	require.NoError(t, Decode(raw, prompt.AnalyticsSchema(), &got))
	require.Len(t, got.Metrics, 1)
	assert.Equal(t, "Community Buy-In", got.Metrics[0].Category)
	assert.Equal(t, float64(45), got.Metrics[0].Score)
	require.Len(t, got.Timeline, 1)
	assert.Equal(t, "Kickoff", got.Timeline[0].Title)
	require.Len(t, got.Stakeholders, 1)
	assert.Equal(t, "High", got.Stakeholders[0].Influence)
}

func TestDecodeAnalyticsMetricScoreOutOfRangeFails(t *testing.T) {
	raw := `{
		"metrics": [{"category": "Community Buy-In", "score": 120, "reasoning": "bad"}],
		"timeline": [], "budgetBreakdown": [], "stakeholderAnalysis": [],
		"riskAnalysis": [], "longTermImpact": [], "risks": []
	}`
	var got sim.AnalyticsResult
	require.Error(t, Decode(raw, prompt.AnalyticsSchema(), &got))
}
