package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"skycast/config"
	v1 "skycast/internal/controllers/http/v1"
	"skycast/internal/repositories"
	"skycast/internal/services/preferences"
	"skycast/internal/services/session"
	"skycast/internal/storage"
	"skycast/pkg/httpserver"
	"skycast/pkg/logger"
	"skycast/pkg/metric"
	"skycast/pkg/observe"
)

// @title Skycast API
// @version 1.0.0
// @description Weather for a city or the current location, with a 24 hour offline fallback.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather lookups with stale fallback
// @tag.name Preferences
// @tag.description Display preferences
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf := config.NewConfig()

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.SentryDSN != "" {
		hook = observe.NewSentryHook(cnf.AppEnv, cnf.AppName, 0, false, cnf.SentryDSN)
		writers = append(writers, hook)
	}

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, writers...)
	if hook != nil {
		hook.SetLogger(l)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	m := metric.New(reg)

	var cache session.Cache
	store, err := storage.Open(cnf.Cache.Path, l)
	if err != nil {
		l.Error(err, map[string]any{"path": cnf.Cache.Path})
		l.Warning("running without the offline cache")
	} else {
		cache = store
	}

	if cnf.Provider.APIKey == "" {
		l.Warning("OPENWEATHER_API_KEY is not set, every fetch will fail")
	}

	geocoder, fetcher := repositories.InitOpenWeatherRepositories(cnf, l, m)

	prefs := preferences.NewStore(preferences.Preferences{DarkMode: cnf.DarkMode})
	prefs.Subscribe(func(p preferences.Preferences) {
		l.Debug("preferences changed", map[string]any{"dark_mode": p.DarkMode})
	})

	weatherSession := session.New(fetcher, geocoder, cache, l, m)
	weatherSession.Subscribe(func(v session.View) {
		l.Debug("session state changed", map[string]any{"state": v.State, "request_id": v.RequestID})
	})

	app := httpserver.InitFiberServer(cnf.AppName)

	v1.NewRouter(
		app,
		weatherSession,
		prefs,
		reg,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if store != nil {
			_ = store.Close()
		}
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
