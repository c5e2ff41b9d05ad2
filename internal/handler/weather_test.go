package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielAlencar33564/weather/internal/insight"
	"github.com/gabrielAlencar33564/weather/internal/model"
)

// memWeatherStore keeps readings in memory, most recent first per city.
type memWeatherStore struct {
	byCity map[string][]model.WeatherReading
}

func newMemWeatherStore() *memWeatherStore {
	return &memWeatherStore{byCity: map[string][]model.WeatherReading{}}
}

func (s *memWeatherStore) Insert(_ context.Context, w model.WeatherReading) (model.WeatherReading, error) {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	w.ID = uint64(len(s.byCity[w.City]) + 1)
	s.byCity[w.City] = append([]model.WeatherReading{w}, s.byCity[w.City]...)
	return w, nil
}

func (s *memWeatherStore) List(_ context.Context, limit, offset int) ([]model.WeatherReading, int, error) {
	all, _ := s.All(context.Background())
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *memWeatherStore) RecentByCity(_ context.Context, city string, n int) ([]model.WeatherReading, error) {
	rows := s.byCity[city]
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func (s *memWeatherStore) All(_ context.Context) ([]model.WeatherReading, error) {
	var out []model.WeatherReading
	for _, rows := range s.byCity {
		out = append(out, rows...)
	}
	return out, nil
}

func weatherServer(store WeatherStore) *echo.Echo {
	e := echo.New()
	// no API key configured, so analyses come from the local rules
	h := NewWeatherHandler(store, insight.NewAnalyzer(insight.NewGeminiClient("")))
	e.POST("/v1/weather", h.Ingest)
	e.GET("/v1/weather", h.List)
	e.GET("/v1/weather/insights", h.Insights)
	return e
}

func seedReading(store *memWeatherStore, city string, temp float64) {
	_, _ = store.Insert(context.Background(), model.WeatherReading{
		City:        city,
		Temperature: temp,
		Humidity:    60,
		WindSpeed:   10,
	})
}

func TestInsightsUnknownCityIs404(t *testing.T) {
	store := newMemWeatherStore()
	seedReading(store, "Salvador", 25)
	e := weatherServer(store)

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/insights?city=Atlantis", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgCityNotFound, body["error"])
}

func TestInsightsMissingCityIs400(t *testing.T) {
	e := weatherServer(newMemWeatherStore())

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/insights", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsResponseShape(t *testing.T) {
	store := newMemWeatherStore()
	seedReading(store, "Salvador", 28)
	seedReading(store, "Salvador", 27)
	e := weatherServer(store)

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/insights?city=Salvador", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		City        string               `json:"city"`
		CurrentData model.WeatherReading `json:"current_data"`
		Analysis    insight.Analysis     `json:"analysis"`
		Sample      int                  `json:"history_sample"`
		Message     string               `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Salvador", body.City)
	assert.Equal(t, 27.0, body.CurrentData.Temperature) // most recent first
	assert.NotEmpty(t, body.Analysis.Insight)
	assert.True(t, insight.ValidSeverity(body.Analysis.Severity))
	assert.Equal(t, 2, body.Sample)
	assert.Equal(t, msgAnalysisSuccess, body.Message)
}

func TestWeatherListEnvelope(t *testing.T) {
	store := newMemWeatherStore()
	for i := 0; i < 3; i++ {
		seedReading(store, "Salvador", 20+float64(i))
	}
	e := weatherServer(store)

	req := httptest.NewRequest(http.MethodGet, "/v1/weather?limit=2&offset=0", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []model.WeatherReading `json:"data"`
		Meta pageMeta               `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 3, body.Meta.Total)
	assert.Equal(t, 2, body.Meta.LastPage)
	assert.Equal(t, 1, body.Meta.CurrentPage)
}

func TestIngestStoresReading(t *testing.T) {
	store := newMemWeatherStore()
	e := weatherServer(store)

	payload := `{
		"sensor_data": {"temperature": 24.5, "humidity": 55, "wind_speed": 12, "condition_code": 2, "rain_probability": 10},
		"metadata": {"city": "Salvador", "source": "Open-Meteo", "location": {"lat": "-12.97", "lon": "-38.50"}}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/weather", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var stored model.WeatherReading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, "Salvador", stored.City)
	assert.Equal(t, 24.5, stored.Temperature)
	require.Len(t, store.byCity["Salvador"], 1)
}

func TestIngestRequiresCity(t *testing.T) {
	e := weatherServer(newMemWeatherStore())

	req := httptest.NewRequest(http.MethodPost, "/v1/weather",
		strings.NewReader(`{"sensor_data": {"temperature": 20}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
