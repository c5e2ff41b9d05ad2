package collector

import (
	"context"
	"log"
	"time"

	"github.com/gabrielAlencar33564/weather/internal/config"
	"github.com/gabrielAlencar33564/weather/internal/insight"
	"github.com/gabrielAlencar33564/weather/internal/queue"
)

// Job ties one fetch-and-publish cycle together.
type Job struct {
	Cfg       config.CollectorConfig
	Meteo     *OpenMeteoClient
	Publisher *queue.Publisher
}

func NewJob(cfg config.CollectorConfig, meteo *OpenMeteoClient, pub *queue.Publisher) *Job {
	return &Job{Cfg: cfg, Meteo: meteo, Publisher: pub}
}

// Run performs one collection cycle.  Failures are logged and swallowed
// so the schedule keeps ticking; the next cycle simply tries again.
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cur, err := j.Meteo.Fetch(ctx, j.Cfg.CityLat, j.Cfg.CityLon)
	if err != nil {
		log.Printf("collector: fetch failed: %v", err)
		return
	}

	ev := j.buildEvent(cur)
	if err := j.Publisher.Publish(ctx, ev); err != nil {
		log.Printf("collector: publish failed: %v", err)
		return
	}
	log.Printf("collector: published %s | %.1f°C | code=%d",
		j.Cfg.CityName, cur.Temperature, cur.WeatherCode)
}

// buildEvent wraps the sampled conditions into a reading event together
// with a coarse on-sensor severity guess.  The API recomputes insights
// on read; this guess only serves consumers tapping the queue directly.
func (j *Job) buildEvent(cur CurrentConditions) queue.ReadingEvent {
	text, severity := quickInsight(cur)
	return queue.ReadingEvent{
		SensorData: queue.SensorData{
			Temperature:     cur.Temperature,
			Humidity:        cur.Humidity,
			WindSpeed:       cur.WindSpeed,
			ConditionCode:   cur.WeatherCode,
			RainProbability: cur.RainProbability,
		},
		AIAnalysis: queue.AIAnalysis{Insight: text, Severity: severity},
		Metadata: queue.Metadata{
			City:      j.Cfg.CityName,
			Source:    "Open-Meteo",
			Timestamp: float64(time.Now().UTC().UnixNano()) / float64(time.Second),
			Location:  queue.Location{Lat: j.Cfg.CityLat, Lon: j.Cfg.CityLon},
		},
	}
}

// quickInsight is the collector-side heuristic: a single-reading
// classification, deliberately cruder than the windowed analysis the API
// serves.  First matching rule wins.
func quickInsight(cur CurrentConditions) (string, string) {
	switch {
	case cur.Temperature > 32:
		return "Extreme heat! Risk of heatstroke.", insight.SeverityHigh
	case cur.Temperature > 28 && cur.Humidity < 30:
		return "Hot and dry air. Drink water.", insight.SeverityMedium
	case cur.WeatherCode >= 95:
		return "Electrical storm detected.", insight.SeverityHigh
	case cur.WeatherCode >= 61:
		return "Steady rain.", insight.SeverityMedium
	case cur.Temperature < 18:
		return "Low temperature.", insight.SeverityMedium
	}
	return "Stable weather.", insight.SeverityLow
}
