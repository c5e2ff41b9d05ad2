// Package queue defines the reading event carried over the message
// broker plus the publisher and consumer endpoints of the pipeline:
// collector -> RabbitMQ -> API server -> weather_readings table.
package queue

import (
	"math"
	"time"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

// SensorData is the measured part of a reading event.
type SensorData struct {
	Temperature     float64 `json:"temperature"`
	Humidity        float64 `json:"humidity"`
	WindSpeed       float64 `json:"wind_speed"`
	ConditionCode   int     `json:"condition_code"`
	RainProbability float64 `json:"rain_probability"`
}

// AIAnalysis is the collector's local severity guess.  It rides along
// for downstream consumers but is never persisted; insights served by
// the API are always computed on read.
type AIAnalysis struct {
	Insight  string `json:"insight"`
	Severity string `json:"severity"`
}

// Location pins the reading to coordinates, kept as strings exactly as
// configured on the collector.
type Location struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Metadata describes where and when the reading was taken.  Timestamp is
// unix seconds, possibly fractional.
type Metadata struct {
	City      string   `json:"city"`
	Source    string   `json:"source"`
	Timestamp float64  `json:"timestamp"`
	Location  Location `json:"location"`
}

// ReadingEvent is one collected observation published to the broker and
// accepted verbatim by the ingest endpoint.
type ReadingEvent struct {
	SensorData SensorData `json:"sensor_data"`
	AIAnalysis AIAnalysis `json:"ai_analysis"`
	Metadata   Metadata   `json:"metadata"`
}

// Reading flattens the event into the row stored in weather_readings.
// A zero timestamp falls back to the current time.
func (e ReadingEvent) Reading() model.WeatherReading {
	createdAt := time.Now().UTC()
	if e.Metadata.Timestamp > 0 {
		sec, frac := math.Modf(e.Metadata.Timestamp)
		createdAt = time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
	}
	return model.WeatherReading{
		City:            e.Metadata.City,
		Temperature:     e.SensorData.Temperature,
		Humidity:        e.SensorData.Humidity,
		WindSpeed:       e.SensorData.WindSpeed,
		ConditionCode:   e.SensorData.ConditionCode,
		RainProbability: e.SensorData.RainProbability,
		Lat:             e.Metadata.Location.Lat,
		Lon:             e.Metadata.Location.Lon,
		CreatedAt:       createdAt,
	}
}
