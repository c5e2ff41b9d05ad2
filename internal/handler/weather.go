package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/gabrielAlencar33564/weather/internal/insight"
	"github.com/gabrielAlencar33564/weather/internal/model"
	"github.com/gabrielAlencar33564/weather/internal/queue"
)

const (
	msgCityNotFound    = "no data found for the requested city"
	msgAnalysisSuccess = "smart analysis generated successfully"

	// size of the most-recent-first reading window fed to the analyzer
	insightWindowSize = 10
)

// WeatherStore is the reading storage the weather endpoints depend on.
// *repository.WeatherRepo is the production implementation.
type WeatherStore interface {
	Insert(ctx context.Context, w model.WeatherReading) (model.WeatherReading, error)
	List(ctx context.Context, limit, offset int) ([]model.WeatherReading, int, error)
	RecentByCity(ctx context.Context, city string, n int) ([]model.WeatherReading, error)
	All(ctx context.Context) ([]model.WeatherReading, error)
}

// WeatherHandler bundles dependencies for the weather endpoints.
type WeatherHandler struct {
	Readings WeatherStore
	Analyzer *insight.Analyzer
}

func NewWeatherHandler(readings WeatherStore, analyzer *insight.Analyzer) *WeatherHandler {
	return &WeatherHandler{Readings: readings, Analyzer: analyzer}
}

// Ingest appends one reading to the log.  The payload is the same event
// the collector publishes to the broker, so external workers can post
// here directly.  Readings are immutable once stored.
func (h *WeatherHandler) Ingest(c echo.Context) error {
	var ev queue.ReadingEvent
	if err := c.Bind(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(ev.Metadata.City) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Readings.Insert(ctx, ev.Reading())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store reading failed"})
	}
	return c.JSON(http.StatusCreated, stored)
}

// List returns readings most recent first with the pagination envelope.
func (h *WeatherHandler) List(c echo.Context) error {
	limit, offset := limitOffset(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	readings, total, err := h.Readings.List(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": readings,
		"meta": buildMeta(total, limit, offset),
	})
}

// Insights computes the smart analysis for one city from its ten most
// recent readings.  An unknown city short-circuits with 404 before the
// analyzer ever runs; a failing or unconfigured model is recovered via
// the deterministic fallback and never surfaces as an error.
func (h *WeatherHandler) Insights(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	window, err := h.Readings.RecentByCity(ctx, city, insightWindowSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(window) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgCityNotFound})
	}

	analysis := h.Analyzer.AnalyzeHistory(ctx, window)

	return c.JSON(http.StatusOK, echo.Map{
		"city":           city,
		"current_data":   window[0],
		"analysis":       analysis,
		"history_sample": len(window),
		"message":        msgAnalysisSuccess,
	})
}

// exportHeader is the column layout shared by both export formats.
var exportHeader = []string{"Date/Time", "City", "Temp (°C)", "Humidity (%)", "Wind (km/h)", "Condition", "Rain (%)"}

func exportRow(r model.WeatherReading) []string {
	return []string{
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.City,
		strconv.FormatFloat(r.Temperature, 'f', 1, 64),
		strconv.FormatFloat(r.Humidity, 'f', 0, 64),
		strconv.FormatFloat(r.WindSpeed, 'f', 1, 64),
		strconv.Itoa(r.ConditionCode),
		strconv.FormatFloat(r.RainProbability, 'f', 0, 64),
	}
}

// ExportXLSX streams every reading as a spreadsheet download.
func (h *WeatherHandler) ExportXLSX(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	readings, err := h.Readings.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	const sheet = "Weather"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i, r := range readings {
		for col, val := range exportRow(r) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, val)
		}
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", "weather_data.xlsx"))
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

// ExportCSV streams every reading as CSV with the same columns as the
// spreadsheet export.
func (h *WeatherHandler) ExportCSV(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	readings, err := h.Readings.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", "weather_data.csv"))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range readings {
		if err := w.Write(exportRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
