package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielAlencar33564/weather/internal/insight"
)

func TestFetchCurrentConditions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/forecast", r.URL.Path)
		require.Equal(t, "-12.51", r.URL.Query().Get("latitude"))
		require.Equal(t, "-41.57", r.URL.Query().Get("longitude"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current": {
				"time": "2025-06-01T12:00",
				"temperature_2m": 27.3,
				"relative_humidity_2m": 64,
				"wind_speed_10m": 11.2,
				"weather_code": 3,
				"precipitation_probability": 20
			}
		}`))
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(srv.URL)
	cur, err := c.Fetch(context.Background(), "-12.51", "-41.57")
	require.NoError(t, err)
	assert.Equal(t, 27.3, cur.Temperature)
	assert.Equal(t, 64.0, cur.Humidity)
	assert.Equal(t, 11.2, cur.WindSpeed)
	assert.Equal(t, 3, cur.WeatherCode)
	assert.Equal(t, 20.0, cur.RainProbability)
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(srv.URL)
	_, err := c.Fetch(context.Background(), "0", "0")
	assert.Error(t, err)
}

func TestQuickInsightRules(t *testing.T) {
	cases := []struct {
		name     string
		cur      CurrentConditions
		severity string
	}{
		{"extreme heat", CurrentConditions{Temperature: 33}, insight.SeverityHigh},
		{"hot and dry", CurrentConditions{Temperature: 29, Humidity: 20}, insight.SeverityMedium},
		{"storm", CurrentConditions{Temperature: 25, Humidity: 70, WeatherCode: 96}, insight.SeverityHigh},
		{"rain", CurrentConditions{Temperature: 25, Humidity: 70, WeatherCode: 63}, insight.SeverityMedium},
		{"cold", CurrentConditions{Temperature: 12, Humidity: 70}, insight.SeverityMedium},
		{"stable", CurrentConditions{Temperature: 24, Humidity: 50}, insight.SeverityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, severity := quickInsight(tc.cur)
			assert.Equal(t, tc.severity, severity)
		})
	}
}
