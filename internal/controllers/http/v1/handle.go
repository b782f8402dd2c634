package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"skycast/internal/models"
	"skycast/internal/services/forecast"
	"skycast/internal/services/preferences"
	"skycast/internal/services/session"
)

// WeatherResponse is everything the weather screen renders for one session state.
type WeatherResponse struct {
	State               session.State           `json:"state" example:"visible"`
	RequestID           string                  `json:"request_id,omitempty" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	City                string                  `json:"city,omitempty" example:"London"`
	Stale               bool                    `json:"stale" example:"false"`
	FetchedAt           *time.Time              `json:"fetched_at,omitempty" example:"2025-07-25T12:00:00Z"`
	Notice              string                  `json:"notice,omitempty" example:"Showing saved weather from 2025-07-25T10:00:00Z"`
	Error               string                  `json:"error,omitempty" example:"City not found"`
	Snapshot            *models.Snapshot        `json:"snapshot,omitempty"`
	Days                []models.DailyAggregate `json:"days,omitempty"`
	Blocks              []models.Block          `json:"blocks,omitempty"`
	Prediction          string                  `json:"prediction,omitempty" example:"Tomorrow looks warm and sunny."`
	Asset               forecast.AssetKey       `json:"asset,omitempty" example:"clear"`
	AirQualityAnomalous bool                    `json:"air_quality_anomalous" example:"false"`
	Notification        *forecast.Notification  `json:"notification,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"lat must be a valid latitude"`
}

type cityQuery struct {
	City string `query:"city" validate:"max=200"`
}

type locationQuery struct {
	Latitude  *float64 `query:"lat" validate:"required,latitude"`
	Longitude *float64 `query:"lon" validate:"required,longitude"`
}

// handleCityWeather godoc
// @Summary Get weather for a city
// @Description Fetches a fresh snapshot for the city. When the provider fails, a snapshot saved less than 24 hours ago is returned instead and marked stale.
// @Tags Weather
// @Produce json
// @Param city query string true "City name" example(London)
// @Success 200 {object} WeatherResponse "Fresh or stale weather"
// @Failure 400 {object} WeatherResponse "Empty city name"
// @Failure 404 {object} WeatherResponse "City not found"
// @Failure 503 {object} WeatherResponse "Provider unavailable and no usable saved weather"
// @Router /weather [get]
func (r *routes) handleCityWeather(c *fiber.Ctx) error {
	var q cityQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	if err := r.validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return r.render(c, r.session.RequestCity(c.UserContext(), q.City))
}

// handleLocationWeather godoc
// @Summary Get weather for the current location
// @Description Resolves the coordinates to a city name, then behaves like /weather.
// @Tags Weather
// @Produce json
// @Param lat query number true "Latitude (-90 to 90)" example(51.5073)
// @Param lon query number true "Longitude (-180 to 180)" example(-0.1276)
// @Success 200 {object} WeatherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} WeatherResponse
// @Failure 503 {object} WeatherResponse
// @Router /weather/location [get]
func (r *routes) handleLocationWeather(c *fiber.Ctx) error {
	var q locationQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	if err := r.validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return r.render(c, r.session.RequestCurrentLocation(c.UserContext(), *q.Latitude, *q.Longitude))
}

// handleCurrentWeather godoc
// @Summary Get the last shown weather
// @Description Returns the current session state without contacting the provider.
// @Tags Weather
// @Produce json
// @Success 200 {object} WeatherResponse
// @Router /weather/current [get]
func (r *routes) handleCurrentWeather(c *fiber.Ctx) error {
	view := r.session.Current()
	if view.State == session.Idle || view.State == session.Fetching {
		return c.JSON(newWeatherResponse(view))
	}
	return r.render(c, view)
}

func (r *routes) render(c *fiber.Ctx, view session.View) error {
	status := fiber.StatusOK
	if view.State == session.Unavailable {
		status = statusFor(view.Err)
		r.l.Warning("weather unavailable", map[string]any{
			"request_id": view.RequestID,
			"city":       view.City,
			"status":     status,
			"error":      errString(view.Err),
		})
	}

	return c.Status(status).JSON(newWeatherResponse(view))
}

func newWeatherResponse(view session.View) WeatherResponse {
	resp := WeatherResponse{
		State:     view.State,
		RequestID: view.RequestID,
		City:      view.City,
		Stale:     view.Stale(),
	}

	if view.Err != nil {
		resp.Error = userMessage(view.Err)
	}

	if view.Snapshot == nil {
		return resp
	}

	snapshot := view.Snapshot
	fetchedAt := view.FetchedAt
	resp.FetchedAt = &fetchedAt
	resp.Snapshot = snapshot
	resp.Days = forecast.GroupByDay(snapshot.Upcoming())
	resp.Blocks = forecast.DefaultBlocks(snapshot.Series)
	resp.Prediction = forecast.PredictNextDay(snapshot.Series)
	resp.Asset = forecast.AssetKeyFor(snapshot.Current.SkyCondition)
	resp.AirQualityAnomalous = snapshot.AirQuality.Anomalous()
	if n, ok := forecast.Advise(snapshot.City, snapshot.Current); ok {
		resp.Notification = &n
	}

	if view.Stale() {
		resp.Notice = fmt.Sprintf("Showing saved weather from %s", fetchedAt.UTC().Format(time.RFC3339))
	}

	return resp
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusServiceUnavailable
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return "Please enter a city name"
	case errors.Is(err, models.ErrNotFound):
		return "City not found"
	case errors.Is(err, models.ErrConfiguration):
		return "Weather service is not configured"
	default:
		return "Weather service is unavailable"
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// handleGetPreferences godoc
// @Summary Get display preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} preferences.Preferences
// @Router /preferences [get]
func (r *routes) handleGetPreferences(c *fiber.Ctx) error {
	return c.JSON(r.preferences.Get())
}

// handlePutPreferences godoc
// @Summary Update display preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param preferences body preferences.Preferences true "New preferences"
// @Success 200 {object} preferences.Preferences
// @Failure 400 {object} ErrorResponse
// @Router /preferences [put]
func (r *routes) handlePutPreferences(c *fiber.Ctx) error {
	var p preferences.Preferences
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid preferences body"})
	}

	r.preferences.Set(p)
	r.l.Info("preferences updated", map[string]any{"dark_mode": p.DarkMode})

	return c.JSON(r.preferences.Get())
}
