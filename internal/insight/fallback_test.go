package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

func reading(temp, rainProb float64, code int) model.WeatherReading {
	return model.WeatherReading{
		City:            "Palmeiras",
		Temperature:     temp,
		Humidity:        55,
		WindSpeed:       12,
		ConditionCode:   code,
		RainProbability: rainProb,
	}
}

func TestFallbackEmptyWindow(t *testing.T) {
	a := Fallback(nil)
	assert.Equal(t, MsgInsufficientData, a.Insight)
	assert.Equal(t, SeverityLow, a.Severity)
}

func TestFallbackStorm(t *testing.T) {
	a := Fallback([]model.WeatherReading{reading(20, 90, 97)})
	assert.Equal(t, SeverityHigh, a.Severity)
	assert.Contains(t, a.Insight, MsgStorm)
}

func TestFallbackRainOnly(t *testing.T) {
	// high rain probability without a thunderstorm code takes the rain
	// branch, not the storm branch
	a := Fallback([]model.WeatherReading{reading(20, 70, 61)})
	assert.Equal(t, SeverityMedium, a.Severity)
	assert.Contains(t, a.Insight, MsgRain)
	assert.NotContains(t, a.Insight, MsgStorm)
}

func TestFallbackCriticalHeat(t *testing.T) {
	a := Fallback([]model.WeatherReading{reading(36, 0, 0)})
	assert.Equal(t, SeverityCritical, a.Severity)
	assert.Contains(t, a.Insight, MsgHeatCritical)
}

func TestFallbackCriticalHeatOverridesStorm(t *testing.T) {
	// critical heat sets the level unconditionally even after the storm
	// rule already raised it to high
	a := Fallback([]model.WeatherReading{reading(36, 90, 97)})
	assert.Equal(t, SeverityCritical, a.Severity)
	assert.Contains(t, a.Insight, MsgStorm)
	assert.Contains(t, a.Insight, MsgHeatCritical)
}

func TestFallbackHeatWarningDoesNotDowngradeStorm(t *testing.T) {
	// storm raised severity to high; the heat warning appends its
	// fragment but must not pull the level back down to medium
	a := Fallback([]model.WeatherReading{reading(32, 90, 97)})
	assert.Equal(t, SeverityHigh, a.Severity)
	assert.Contains(t, a.Insight, MsgStorm)
	assert.Contains(t, a.Insight, MsgHeatWarning)
}

func TestFallbackCold(t *testing.T) {
	a := Fallback([]model.WeatherReading{reading(5, 0, 0)})
	assert.Equal(t, SeverityMedium, a.Severity)
	assert.Contains(t, a.Insight, MsgCold)
}

func TestFallbackRisingTrend(t *testing.T) {
	window := []model.WeatherReading{
		reading(32, 0, 0), // current
		reading(28, 0, 0),
		reading(28, 0, 0),
	}
	a := Fallback(window)
	assert.Contains(t, a.Insight, "rising")
	assert.Contains(t, a.Insight, "4.0")
	// heat warning escalates to at least medium
	assert.NotEqual(t, SeverityLow, a.Severity)
}

func TestFallbackFallingTrend(t *testing.T) {
	window := []model.WeatherReading{
		reading(15, 0, 0),
		reading(20, 0, 0),
		reading(20, 0, 0),
	}
	a := Fallback(window)
	assert.Contains(t, a.Insight, "falling")
	assert.Contains(t, a.Insight, "5.0")
	assert.Equal(t, SeverityLow, a.Severity)
}

func TestFallbackSingleReadingHasNoTrend(t *testing.T) {
	// with no history the average equals the current temperature, so the
	// trend rule can never fire
	a := Fallback([]model.WeatherReading{reading(20, 0, 0)})
	assert.NotContains(t, a.Insight, "Temperature trend")
	assert.Equal(t, MsgNormal, a.Insight)
	assert.Equal(t, SeverityLow, a.Severity)
}

func TestFallbackFragmentsJoinedBySingleSpace(t *testing.T) {
	a := Fallback([]model.WeatherReading{reading(32, 70, 61)})
	require.Contains(t, a.Insight, MsgRain)
	require.Contains(t, a.Insight, MsgHeatWarning)
	assert.Equal(t, MsgRain+" "+MsgHeatWarning, a.Insight)
	assert.False(t, strings.Contains(a.Insight, "  "))
}

func TestFallbackIsIdempotent(t *testing.T) {
	window := []model.WeatherReading{
		reading(33, 85, 96),
		reading(25, 10, 2),
		reading(24, 10, 2),
	}
	first := Fallback(window)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Fallback(window))
	}
}

func TestValidSeverity(t *testing.T) {
	for _, s := range []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		assert.True(t, ValidSeverity(s))
	}
	assert.False(t, ValidSeverity("extreme"))
	assert.False(t, ValidSeverity(""))
}
