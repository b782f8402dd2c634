package repositories

import (
	"context"
	"net/http"

	"skycast/config"
	"skycast/internal/models"
	"skycast/pkg/logger"
	"skycast/pkg/metric"
)

// Geocoder resolves city names to coordinates and back.
type Geocoder interface {
	Forward(ctx context.Context, city string) (models.Coordinates, error)
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// SnapshotFetcher assembles a full weather snapshot for a city.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, city string) (models.Snapshot, error)
}

// InitOpenWeatherRepositories wires the geocoder and the fetcher from configuration.
func InitOpenWeatherRepositories(cfg *config.Config, l *logger.Logger, m *metric.Metric) (*GeocodingRepository, *OpenWeatherRepository) {
	opts := ClientOptions{
		BaseURL:    cfg.Provider.BaseURL,
		APIKey:     cfg.Provider.APIKey,
		Timeout:    cfg.Provider.Timeout,
		HTTPClient: &http.Client{},
	}

	geocoder := NewGeocodingRepository(opts, l, m)
	fetcher := NewOpenWeatherRepository(opts, geocoder, l, m)

	return geocoder, fetcher
}
