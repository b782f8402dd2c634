package models

import "fmt"

const kelvinOffset = 273.15

// ForecastEntry is one 3-hour sample of the provider forecast series.
type ForecastEntry struct {
	Timestamp                string  `json:"timestamp" example:"2025-07-25 18:00:00"`
	TemperatureKelvin        float64 `json:"temperature_kelvin" example:"295.15"`
	SkyCondition             string  `json:"sky_condition" example:"Clear"`
	WindSpeed                float64 `json:"wind_speed" example:"3.4"`
	HumidityPercent          float64 `json:"humidity_percent" example:"64"`
	PressureHPa              float64 `json:"pressure_hpa" example:"1012"`
	PrecipitationProbability float64 `json:"precipitation_probability" example:"0.2"`
}

func (e ForecastEntry) TemperatureCelsius() float64 {
	return e.TemperatureKelvin - kelvinOffset
}

// Date returns the calendar day of the entry in the provider's local time, yyyy-MM-dd.
func (e ForecastEntry) Date() string {
	if len(e.Timestamp) < 10 {
		return e.Timestamp
	}
	return e.Timestamp[:10]
}

// Clock returns the HH:mm part of the timestamp, or the raw timestamp when it has no time part.
func (e ForecastEntry) Clock() string {
	if len(e.Timestamp) < 16 {
		return e.Timestamp
	}
	return e.Timestamp[11:16]
}

// DailyAggregate summarizes all entries of a calendar day.
type DailyAggregate struct {
	Date                        string  `json:"date" example:"2025-07-25"`
	HighTemperatureC            float64 `json:"high_temperature_c" example:"26.85"`
	LowTemperatureC             float64 `json:"low_temperature_c" example:"16.85"`
	AveragePrecipitationPercent float64 `json:"average_precipitation_percent" example:"20"`
	DominantSkyCondition        string  `json:"dominant_sky_condition" example:"Clear"`
}

// Block summarizes a run of consecutive forecast entries for the hourly strip.
type Block struct {
	Start                string  `json:"start" example:"12:00"`
	End                  string  `json:"end" example:"18:00"`
	TemperatureC         float64 `json:"temperature_c" example:"22"`
	DominantSkyCondition string  `json:"dominant_sky_condition" example:"Clouds"`
	WindSpeed            float64 `json:"wind_speed" example:"3.1"`
	HumidityPercent      float64 `json:"humidity_percent" example:"58"`
}

func (b Block) String() string {
	return fmt.Sprintf("%s-%s %.0f°C %s", b.Start, b.End, b.TemperatureC, b.DominantSkyCondition)
}
