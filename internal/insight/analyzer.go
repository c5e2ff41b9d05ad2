package insight

import (
	"context"
	"log"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

// Analyzer produces an Analysis for a reading window, preferring the
// generative model and recovering locally when it cannot be used.  The
// fallback substitution happens exactly once per call and is never
// surfaced to the caller as an error.
type Analyzer struct {
	Gemini *GeminiClient // nil or disabled means fallback-only
}

func NewAnalyzer(gemini *GeminiClient) *Analyzer {
	return &Analyzer{Gemini: gemini}
}

// AnalyzeHistory returns the analysis for a most-recent-first window.
// Callers are expected to short-circuit with a not-found response for
// unknown cities; the empty-window branch here is defensive only.
func (a *Analyzer) AnalyzeHistory(ctx context.Context, window []model.WeatherReading) Analysis {
	if len(window) == 0 {
		return Analysis{Insight: MsgInsufficientData, Severity: SeverityLow}
	}

	if !a.Gemini.Enabled() {
		log.Printf("insight: gemini api key not configured, using local analysis")
		return Fallback(window)
	}

	log.Printf("insight: requesting model analysis over %d readings", len(window))
	res, err := a.Gemini.Analyze(ctx, window)
	if err != nil {
		log.Printf("insight: model analysis failed: %v; using local analysis", err)
		return Fallback(window)
	}
	return res
}
