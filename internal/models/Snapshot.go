package models

import (
	"fmt"
	"time"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude" example:"51.5073"`
	Longitude float64 `json:"longitude" example:"-0.1276"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", c.Latitude, c.Longitude)
}

// AirQuality is the provider's "now" air pollution reading.
type AirQuality struct {
	AQI  int     `json:"aqi" example:"2"`
	PM25 float64 `json:"pm2_5" example:"8.4"`
	PM10 float64 `json:"pm10" example:"12.9"`
}

// Anomalous reports an AQI outside the provider's 1-5 scale.
func (a AirQuality) Anomalous() bool {
	return a.AQI < 1 || a.AQI > 5
}

// Snapshot bundles everything a single successful fetch returns.
// Series[0] is always the entry exposed as Current.
type Snapshot struct {
	City        string          `json:"city" example:"London"`
	Coordinates Coordinates     `json:"coordinates"`
	Current     ForecastEntry   `json:"current"`
	AirQuality  AirQuality      `json:"air_quality"`
	Series      []ForecastEntry `json:"series"`
}

// Upcoming returns the series without the current entry.
func (s Snapshot) Upcoming() []ForecastEntry {
	if len(s.Series) <= 1 {
		return []ForecastEntry{}
	}
	return s.Series[1:]
}

// CacheRecord is the durable copy of the last successful fetch.
type CacheRecord struct {
	Snapshot  Snapshot  `json:"snapshot"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Age returns how old the record is at now.
func (r CacheRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.FetchedAt)
}
