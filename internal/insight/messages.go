package insight

import (
	"fmt"
	"math"
)

// Fixed insight fragments.  The fallback generator concatenates a subset
// of these; handlers return them verbatim in the analysis payload.
const (
	MsgInsufficientData = "Insufficient data for a reliable historical analysis."
	MsgStorm            = "Storm alert! High probability of rain with thunderstorms."
	MsgRain             = "Considerable chance of rain. Take an umbrella."
	MsgHeatCritical     = "Critical heat detected. Risk of heatstroke. Stay hydrated!"
	MsgHeatWarning      = "High temperature. Avoid prolonged sun exposure."
	MsgCold             = "Low temperature. Dress warmly."
	MsgNormal           = "The weather is stable and within normal ranges for the region."
)

// trendMessage renders the temperature-trend fragment.  Direction follows
// the sign of the difference against the historical average; the magnitude
// is shown with one decimal.
func trendMessage(tempDiff float64) string {
	direction := "rising"
	if tempDiff <= 0 {
		direction = "falling"
	}
	return fmt.Sprintf("Temperature trend %s rapidly (%.1f°C change from the average).",
		direction, math.Abs(tempDiff))
}
