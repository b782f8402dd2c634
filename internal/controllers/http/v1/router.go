package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "skycast/docs"
	"skycast/internal/services/preferences"
	"skycast/internal/services/session"
	"skycast/pkg/logger"
)

type routes struct {
	session     *session.Session
	preferences *preferences.Store
	validate    *validator.Validate
	l           *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherSession *session.Session,
	prefs *preferences.Store,
	gatherer prometheus.Gatherer,
	l *logger.Logger,
) {
	r := &routes{
		session:     weatherSession,
		preferences: prefs,
		validate:    validator.New(),
		l:           l,
	}

	app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: true,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Get("/weather", r.handleCityWeather)
	app.Get("/weather/location", r.handleLocationWeather)
	app.Get("/weather/current", r.handleCurrentWeather)

	app.Get("/preferences", r.handleGetPreferences)
	app.Put("/preferences", r.handlePutPreferences)
}
