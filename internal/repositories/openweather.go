package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"skycast/internal/models"
	"skycast/pkg/logger"
	"skycast/pkg/metric"
)

const (
	forecastPath     = "/data/2.5/forecast"
	airPollutionPath = "/data/2.5/air_pollution"

	forecastSuccessCode = "200"
)

type OpenWeatherRepository struct {
	client   *providerClient
	geocoder Geocoder
	l        *logger.Logger
}

func NewOpenWeatherRepository(opts ClientOptions, geocoder Geocoder, l *logger.Logger, m *metric.Metric) *OpenWeatherRepository {
	return &OpenWeatherRepository{
		client:   newProviderClient("openweather-data", opts, l, m),
		geocoder: geocoder,
		l:        l,
	}
}

type forecastResponse struct {
	Cod  json.Number `json:"cod"`
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Pressure float64 `json:"pressure"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
		} `json:"components"`
	} `json:"list"`
}

// FetchSnapshot fetches the forecast series, geocodes the city and fetches air quality, in that order.
// The first failing step aborts the whole fetch.
func (o *OpenWeatherRepository) FetchSnapshot(ctx context.Context, city string) (models.Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.Snapshot{}, fmt.Errorf("%w: city name cannot be empty", models.ErrInvalidInput)
	}
	if err := o.client.checkKey(); err != nil {
		return models.Snapshot{}, err
	}

	series, err := o.fetchSeries(ctx, city)
	if err != nil {
		return models.Snapshot{}, err
	}

	coords, err := o.geocoder.Forward(ctx, city)
	if err != nil {
		return models.Snapshot{}, err
	}

	air, err := o.fetchAirQuality(ctx, coords)
	if err != nil {
		return models.Snapshot{}, err
	}

	if air.Anomalous() {
		o.l.Warning("air quality index outside 1-5 scale", map[string]any{
			"city": city,
			"aqi":  air.AQI,
		})
	}

	return models.Snapshot{
		City:        strings.Clone(city),
		Coordinates: coords,
		Current:     series[0],
		AirQuality:  air,
		Series:      series,
	}, nil
}

func (o *OpenWeatherRepository) fetchSeries(ctx context.Context, city string) ([]models.ForecastEntry, error) {
	var response forecastResponse
	if err := o.client.get(ctx, "forecast", forecastPath, map[string]string{"q": city}, &response); err != nil {
		return nil, err
	}

	if response.Cod.String() != forecastSuccessCode {
		return nil, &models.UpstreamError{
			Endpoint: "forecast",
			Err:      fmt.Errorf("unexpected response code %q", response.Cod.String()),
		}
	}

	o.l.Info("parsed API response", map[string]any{
		"city":  city,
		"items": len(response.List),
	})

	if len(response.List) == 0 {
		return nil, &models.UpstreamError{Endpoint: "forecast", Err: fmt.Errorf("no forecast data available")}
	}

	series := make([]models.ForecastEntry, 0, len(response.List))
	for _, item := range response.List {
		entry := models.ForecastEntry{
			Timestamp:                item.DtTxt,
			TemperatureKelvin:        item.Main.Temp,
			WindSpeed:                item.Wind.Speed,
			HumidityPercent:          item.Main.Humidity,
			PressureHPa:              item.Main.Pressure,
			PrecipitationProbability: item.Pop,
		}
		if len(item.Weather) > 0 {
			entry.SkyCondition = item.Weather[0].Main
		}
		series = append(series, entry)
	}

	return series, nil
}

func (o *OpenWeatherRepository) fetchAirQuality(ctx context.Context, coords models.Coordinates) (models.AirQuality, error) {
	var response airPollutionResponse
	err := o.client.get(ctx, "air_pollution", airPollutionPath, map[string]string{
		"lat": formatCoordinate(coords.Latitude),
		"lon": formatCoordinate(coords.Longitude),
	}, &response)
	if err != nil {
		return models.AirQuality{}, err
	}

	if len(response.List) == 0 {
		return models.AirQuality{}, &models.UpstreamError{Endpoint: "air_pollution", Err: fmt.Errorf("no air quality data available")}
	}

	reading := response.List[0]
	return models.AirQuality{
		AQI:  reading.Main.AQI,
		PM25: reading.Components.PM25,
		PM10: reading.Components.PM10,
	}, nil
}
