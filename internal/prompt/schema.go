package prompt

// Declared output shapes for each stage. The same declaration is sent to
// the service as a response schema hint and enforced locally after
// parsing, so the shape here is the single source of truth.

func objectOf(props map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func arrayOf(items map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": items}
}

func stringType() map[string]interface{} {
	return map[string]interface{}{"type": "string"}
}

func numberRange(min, max float64) map[string]interface{} {
	return map[string]interface{}{"type": "number", "minimum": min, "maximum": max}
}

func numberType() map[string]interface{} {
	return map[string]interface{}{"type": "number"}
}

func integerRange(min, max int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": min, "maximum": max}
}

func enumOf(values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values}
}

// SummarySchema declares the stage-1 output shape. All scores are 0-100.
func SummarySchema() map[string]interface{} {
	return objectOf(map[string]interface{}{
		"overallScore":        numberRange(0, 100),
		"communitySentiment":  numberRange(0, 100),
		"sustainabilityScore": numberRange(0, 100),
		"narrative":           stringType(),
		"successFactors":      arrayOf(stringType()),
	}, "overallScore", "communitySentiment", "sustainabilityScore", "narrative", "successFactors")
}

// AnalyticsSchema declares the stage-2 output shape.
func AnalyticsSchema() map[string]interface{} {
	return objectOf(map[string]interface{}{
		"metrics": arrayOf(objectOf(map[string]interface{}{
			"category":  stringType(),
			"score":     numberRange(0, 100),
			"reasoning": stringType(),
		}, "category", "score", "reasoning")),
		"timeline": arrayOf(objectOf(map[string]interface{}{
			"month":          stringType(),
			"title":          stringType(),
			"description":    stringType(),
			"sentimentScore": numberRange(0, 100),
		}, "month", "title", "sentimentScore")),
		"budgetBreakdown": arrayOf(objectOf(map[string]interface{}{
			"category":   stringType(),
			"percentage": numberType(),
		}, "category", "percentage")),
		"stakeholderAnalysis": arrayOf(objectOf(map[string]interface{}{
			"group":     stringType(),
			"sentiment": numberRange(-100, 100),
			"influence": enumOf("High", "Medium", "Low"),
		}, "group", "sentiment", "influence")),
		"riskAnalysis": arrayOf(objectOf(map[string]interface{}{
			"risk":       stringType(),
			"likelihood": integerRange(1, 10),
			"severity":   integerRange(1, 10),
		}, "risk", "likelihood", "severity")),
		"longTermImpact": arrayOf(objectOf(map[string]interface{}{
			"year":          stringType(),
			"social":        numberType(),
			"economic":      numberType(),
			"environmental": numberType(),
		}, "year", "social", "economic", "environmental")),
		"risks": arrayOf(stringType()),
	}, "metrics", "timeline", "budgetBreakdown", "stakeholderAnalysis", "riskAnalysis", "longTermImpact", "risks")
}

// StrategySchema declares the stage-3 output shape.
func StrategySchema() map[string]interface{} {
	return objectOf(map[string]interface{}{
		"schedule": arrayOf(objectOf(map[string]interface{}{
			"task":           stringType(),
			"startMonth":     integerRange(0, 120),
			"durationMonths": integerRange(1, 120),
			"type":           enumOf("planning", "execution", "milestone"),
		}, "task", "startMonth", "durationMonths", "type")),
		"pivots": arrayOf(objectOf(map[string]interface{}{
			"title":        stringType(),
			"modification": stringType(),
			"rationale":    stringType(),
			"changes": objectOf(map[string]interface{}{
				"title":           stringType(),
				"location":        stringType(),
				"targetAudience":  stringType(),
				"sector":          stringType(),
				"budget":          stringType(),
				"duration":        stringType(),
				"localPartner":    stringType(),
				"technologyLevel": stringType(),
				"fundingSource":   stringType(),
				"teamExperience":  stringType(),
				"description":     stringType(),
			}),
		}, "title", "modification", "rationale")),
	}, "schedule", "pivots")
}
