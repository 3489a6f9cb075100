package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func valid(v float64) Coefficient {
	return Coefficient{Value: v, Valid: true}
}

func TestInsightsOrderIsFixed(t *testing.T) {
	summary := Summary{
		AQITemperature: valid(0.6),
		WQIRainfall:    valid(-0.2),
	}

	assert.Equal(t, []string{
		"Higher temperatures tend to correlate with poorer air quality.",
		"Rainfall tends to improve water quality.",
	}, Insights(summary))
}

func TestInsightsAllRulesFire(t *testing.T) {
	summary := Summary{
		AQITemperature: valid(0.8),
		AQIHumidity:    valid(-0.1),
		AQIRainfall:    valid(-0.4),
		WQITemperature: valid(-0.3),
		WQIHumidity:    valid(0.7),
		WQIRainfall:    valid(-0.5),
	}

	assert.Equal(t, []string{
		"Higher temperatures tend to correlate with poorer air quality.",
		"Higher humidity tends to correlate with better air quality.",
		"Rainfall tends to reduce air pollution.",
		"Higher temperatures tend to correlate with poorer water quality.",
		"Higher humidity tends to correlate with poorer water quality.",
		"Rainfall tends to improve water quality.",
	}, Insights(summary))
}

func TestInsightsThresholdsAreStrict(t *testing.T) {
	summary := Summary{
		AQITemperature: valid(0.5),
		AQIHumidity:    valid(0),
		WQIHumidity:    valid(0.5),
		WQIRainfall:    valid(0),
	}

	assert.Empty(t, Insights(summary))
}

func TestInsightsUndefinedCoefficientNeverFires(t *testing.T) {
	// A rule over an undefined coefficient must not fire even though the
	// zero value would satisfy the comparison.
	summary := Summary{
		AQIHumidity: Coefficient{Value: -1, Valid: false},
		WQIRainfall: Coefficient{Value: -1, Valid: false},
	}

	assert.Empty(t, Insights(summary))
}
