// Package collector periodically samples current conditions from
// Open-Meteo and publishes them as reading events for the API server to
// store.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CurrentConditions is the slice of the Open-Meteo answer the collector
// cares about.
type CurrentConditions struct {
	Time            string  `json:"time"`
	Temperature     float64 `json:"temperature_2m"`
	Humidity        float64 `json:"relative_humidity_2m"`
	WindSpeed       float64 `json:"wind_speed_10m"`
	WeatherCode     int     `json:"weather_code"`
	RainProbability float64 `json:"precipitation_probability"`
}

type forecastResponse struct {
	Current CurrentConditions `json:"current"`
}

// OpenMeteoClient fetches current conditions for a fixed coordinate.
type OpenMeteoClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewOpenMeteoClient(baseURL string) *OpenMeteoClient {
	return &OpenMeteoClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch requests the current conditions for lat/lon.  Coordinates are
// passed through as strings, exactly as configured.
func (c *OpenMeteoClient) Fetch(ctx context.Context, lat, lon string) (CurrentConditions, error) {
	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code,precipitation_probability")
	q.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return CurrentConditions{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return CurrentConditions{}, fmt.Errorf("open-meteo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CurrentConditions{}, fmt.Errorf("open-meteo: unexpected status %s", resp.Status)
	}

	var out forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CurrentConditions{}, fmt.Errorf("open-meteo: decode response: %w", err)
	}
	return out.Current, nil
}
