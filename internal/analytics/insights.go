package analytics

// insightRule fires when its predicate holds for a defined coefficient.
// Rules are evaluated in declaration order and each appends at most one
// insight, so the output order is fixed and duplicates cannot occur.
type insightRule struct {
	coefficient func(Summary) Coefficient
	holds       func(value float64) bool
	text        string
}

var insightRules = []insightRule{
	{
		coefficient: func(s Summary) Coefficient { return s.AQITemperature },
		holds:       func(v float64) bool { return v > 0.5 },
		text:        "Higher temperatures tend to correlate with poorer air quality.",
	},
	{
		coefficient: func(s Summary) Coefficient { return s.AQIHumidity },
		holds:       func(v float64) bool { return v < 0 },
		text:        "Higher humidity tends to correlate with better air quality.",
	},
	{
		coefficient: func(s Summary) Coefficient { return s.AQIRainfall },
		holds:       func(v float64) bool { return v < 0 },
		text:        "Rainfall tends to reduce air pollution.",
	},
	{
		coefficient: func(s Summary) Coefficient { return s.WQITemperature },
		holds:       func(v float64) bool { return v < 0 },
		text:        "Higher temperatures tend to correlate with poorer water quality.",
	},
	{
		coefficient: func(s Summary) Coefficient { return s.WQIHumidity },
		holds:       func(v float64) bool { return v > 0.5 },
		text:        "Higher humidity tends to correlate with poorer water quality.",
	},
	{
		coefficient: func(s Summary) Coefficient { return s.WQIRainfall },
		holds:       func(v float64) bool { return v < 0 },
		text:        "Rainfall tends to improve water quality.",
	},
}

// Insights applies the fixed rule table to the summary. An undefined
// coefficient never satisfies a rule.
func Insights(s Summary) []string {
	insights := make([]string, 0, len(insightRules))

	for _, rule := range insightRules {
		c := rule.coefficient(s)
		if c.Valid && rule.holds(c.Value) {
			insights = append(insights, rule.text)
		}
	}

	return insights
}
