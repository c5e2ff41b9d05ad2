// Package insight derives a human readable severity assessment from a
// short window of recent weather readings.  When a Gemini API key is
// configured the Analyzer asks the model first; the deterministic
// threshold rules in this file are the local fallback and the only path
// exercised when no key is present.
package insight

import (
	"math"
	"strings"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

// Severity levels attached to an analysis, from calmest to worst.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Analysis is the computed-on-read result returned to clients.  It is
// never persisted.
type Analysis struct {
	Insight  string `json:"insight"`
	Severity string `json:"severity"`
}

// ValidSeverity reports whether s is one of the four known levels.  Used
// to reject malformed model responses before they reach a client.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Fallback evaluates the threshold rules over a most-recent-first reading
// window and returns the joined insight fragments with the final
// severity.  The function is pure: same window in, same analysis out.
//
// Severity only ever escalates within a call.  The storm and critical
// heat rules assign their level directly, while the heat-warning and
// cold rules raise to medium only when the severity is still low.  That
// asymmetry is load-bearing: a storm (high) followed by a heat warning
// must stay high, so the warning rules must not be rewritten as a
// generic maximum over levels.
func Fallback(window []model.WeatherReading) Analysis {
	if len(window) == 0 {
		return Analysis{Insight: MsgInsufficientData, Severity: SeverityLow}
	}

	current := window[0]
	history := window[1:]

	avgTemp := current.Temperature
	if len(history) > 0 {
		sum := 0.0
		for _, r := range history {
			sum += r.Temperature
		}
		avgTemp = sum / float64(len(history))
	}
	tempDiff := current.Temperature - avgTemp

	var parts []string
	severity := SeverityLow

	if current.RainProbability > 80 && current.ConditionCode >= 95 {
		parts = append(parts, MsgStorm)
		severity = SeverityHigh
	} else if current.RainProbability > 60 {
		parts = append(parts, MsgRain)
		severity = SeverityMedium
	}

	if current.Temperature > 35 {
		parts = append(parts, MsgHeatCritical)
		severity = SeverityCritical
	} else if current.Temperature > 30 {
		parts = append(parts, MsgHeatWarning)
		if severity == SeverityLow {
			severity = SeverityMedium
		}
	} else if current.Temperature < 10 {
		parts = append(parts, MsgCold)
		if severity == SeverityLow {
			severity = SeverityMedium
		}
	}

	if math.Abs(tempDiff) >= 3 {
		parts = append(parts, trendMessage(tempDiff))
	}

	if len(parts) == 0 {
		return Analysis{Insight: MsgNormal, Severity: severity}
	}
	return Analysis{Insight: strings.Join(parts, " "), Severity: severity}
}
