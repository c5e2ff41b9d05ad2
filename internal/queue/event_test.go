package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadingFlattensEvent(t *testing.T) {
	ev := ReadingEvent{
		SensorData: SensorData{
			Temperature:     27.3,
			Humidity:        64,
			WindSpeed:       11.2,
			ConditionCode:   3,
			RainProbability: 20,
		},
		Metadata: Metadata{
			City:      "Palmeiras - BA",
			Source:    "Open-Meteo",
			Timestamp: 1750000000.5,
			Location:  Location{Lat: "-12.51", Lon: "-41.57"},
		},
	}

	r := ev.Reading()
	assert.Equal(t, "Palmeiras - BA", r.City)
	assert.Equal(t, 27.3, r.Temperature)
	assert.Equal(t, 3, r.ConditionCode)
	assert.Equal(t, "-12.51", r.Lat)
	assert.Equal(t, "-41.57", r.Lon)
	assert.Equal(t, time.Unix(1750000000, int64(500*time.Millisecond)).UTC(), r.CreatedAt)
}

func TestReadingDefaultsTimestamp(t *testing.T) {
	before := time.Now().UTC()
	r := ReadingEvent{Metadata: Metadata{City: "X"}}.Reading()
	assert.False(t, r.CreatedAt.Before(before.Add(-time.Second)))
	assert.False(t, r.CreatedAt.After(time.Now().UTC().Add(time.Second)))
}
