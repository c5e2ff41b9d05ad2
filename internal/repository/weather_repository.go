package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

type WeatherRepo struct{ DB *sql.DB }

func NewWeatherRepo(db *sql.DB) *WeatherRepo { return &WeatherRepo{DB: db} }

const readingColumns = "id,city,temperature,humidity,wind_speed,condition_code,rain_probability,lat,lon,created_at"

// Insert appends one reading to the log and returns the stored row.
// Readings are never updated or deleted afterwards.
func (r *WeatherRepo) Insert(ctx context.Context, w model.WeatherReading) (model.WeatherReading, error) {
	createdAt := w.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO weather_readings (city, temperature, humidity, wind_speed, condition_code, rain_probability, lat, lon, created_at) VALUES (?,?,?,?,?,?,?,?,?)",
		w.City, w.Temperature, w.Humidity, w.WindSpeed, w.ConditionCode, w.RainProbability, w.Lat, w.Lon, createdAt)
	if err != nil {
		return model.WeatherReading{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WeatherReading{}, err
	}
	w.ID = uint64(id)
	w.CreatedAt = createdAt
	return w, nil
}

func collectReadings(rows *sql.Rows) ([]model.WeatherReading, error) {
	defer rows.Close()
	var readings []model.WeatherReading
	for rows.Next() {
		var w model.WeatherReading
		if err := rows.Scan(&w.ID, &w.City, &w.Temperature, &w.Humidity, &w.WindSpeed,
			&w.ConditionCode, &w.RainProbability, &w.Lat, &w.Lon, &w.CreatedAt); err != nil {
			return nil, err
		}
		readings = append(readings, w)
	}
	return readings, rows.Err()
}

// List returns a page of readings, most recent first, plus the total
// count for the pagination envelope.
func (r *WeatherRepo) List(ctx context.Context, limit, offset int) ([]model.WeatherReading, int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+readingColumns+" FROM weather_readings ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	readings, err := collectReadings(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM weather_readings").Scan(&total); err != nil {
		return nil, 0, err
	}
	return readings, total, nil
}

// RecentByCity returns up to n readings for one city, most recent first.
// This is the reading window fed to the insight analyzer.
func (r *WeatherRepo) RecentByCity(ctx context.Context, city string, n int) ([]model.WeatherReading, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+readingColumns+" FROM weather_readings WHERE city=? ORDER BY created_at DESC, id DESC LIMIT ?",
		city, n)
	if err != nil {
		return nil, err
	}
	return collectReadings(rows)
}

// All returns every reading, most recent first, for the export endpoints.
func (r *WeatherRepo) All(ctx context.Context) ([]model.WeatherReading, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+readingColumns+" FROM weather_readings ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return collectReadings(rows)
}
