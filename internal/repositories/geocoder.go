package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"skycast/internal/models"
	"skycast/pkg/logger"
	"skycast/pkg/metric"
)

const (
	geoDirectPath  = "/geo/1.0/direct"
	geoReversePath = "/geo/1.0/reverse"
)

type GeocodingRepository struct {
	client *providerClient
	l      *logger.Logger
}

func NewGeocodingRepository(opts ClientOptions, l *logger.Logger, m *metric.Metric) *GeocodingRepository {
	return &GeocodingRepository{
		client: newProviderClient("openweather-geo", opts, l, m),
		l:      l,
	}
}

type geoPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// Forward returns the coordinates of the best match for city.
func (g *GeocodingRepository) Forward(ctx context.Context, city string) (models.Coordinates, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.Coordinates{}, fmt.Errorf("%w: city name cannot be empty", models.ErrInvalidInput)
	}
	if err := g.client.checkKey(); err != nil {
		return models.Coordinates{}, err
	}

	var places []geoPlace
	err := g.client.get(ctx, "geocode", geoDirectPath, map[string]string{
		"q":     city,
		"limit": "1",
	}, &places)
	if err != nil {
		return models.Coordinates{}, err
	}

	if len(places) == 0 {
		return models.Coordinates{}, fmt.Errorf("%w: no place matches %q", models.ErrNotFound, city)
	}

	g.l.Debug("geocoded city", map[string]any{
		"city":    city,
		"match":   places[0].Name,
		"country": places[0].Country,
	})

	return models.Coordinates{Latitude: places[0].Lat, Longitude: places[0].Lon}, nil
}

// Reverse returns the name of the place at the given coordinates.
func (g *GeocodingRepository) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 {
		return "", fmt.Errorf("%w: latitude must be between -90 and 90", models.ErrInvalidInput)
	}
	if lon < -180 || lon > 180 {
		return "", fmt.Errorf("%w: longitude must be between -180 and 180", models.ErrInvalidInput)
	}
	if err := g.client.checkKey(); err != nil {
		return "", err
	}

	var places []geoPlace
	err := g.client.get(ctx, "reverse_geocode", geoReversePath, map[string]string{
		"lat":   formatCoordinate(lat),
		"lon":   formatCoordinate(lon),
		"limit": "1",
	}, &places)
	if err != nil {
		return "", err
	}

	if len(places) == 0 || strings.TrimSpace(places[0].Name) == "" {
		return "", fmt.Errorf("%w: no place name resolves to %.4f,%.4f", models.ErrNotFound, lat, lon)
	}

	return places[0].Name, nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
