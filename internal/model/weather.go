package model

import "time"

// WeatherReading models a row in the `weather_readings` table.  Readings
// are append-only: the collector (or an external worker) inserts them and
// the public API never updates or deletes one.
//
// Fields:
//  ID              – primary key identifier.
//  City            – human readable city name the reading belongs to.
//  Temperature     – air temperature in °C.
//  Humidity        – relative humidity in percent.
//  WindSpeed       – wind speed in km/h.
//  ConditionCode   – WMO weather interpretation code.
//  RainProbability – precipitation probability in percent.
//  Lat, Lon        – coordinates of the station, kept as strings exactly
//                    as supplied by the collector.
//  CreatedAt       – observation timestamp.
type WeatherReading struct {
	ID              uint64    `json:"id"`
	City            string    `json:"city"`
	Temperature     float64   `json:"temperature"`
	Humidity        float64   `json:"humidity"`
	WindSpeed       float64   `json:"wind_speed"`
	ConditionCode   int       `json:"condition_code"`
	RainProbability float64   `json:"rain_probability"`
	Lat             string    `json:"lat"`
	Lon             string    `json:"lon"`
	CreatedAt       time.Time `json:"created_at"`
}
