package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"skycast/internal/models"
	"skycast/pkg/logger"
	"skycast/pkg/metric"
)

const (
	OpenWeatherBaseURL = "https://api.openweathermap.org"

	defaultTimeout     = 10 * time.Second
	breakerOpenTimeout = 30 * time.Second
	breakerTripAfter   = 5
	userAgent          = "skycast/1.0"
)

// ClientOptions configures the provider transport shared by the geocoder and the fetcher.
type ClientOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient is used as the underlying transport; a fresh client is created when nil.
	HTTPClient *http.Client
}

// providerClient issues single-shot GET requests against the provider.
// Failures are never retried; the breaker only short-circuits calls while the provider is down.
type providerClient struct {
	rest    *resty.Client
	breaker *gobreaker.CircuitBreaker
	apiKey  string
	l       *logger.Logger
	m       *metric.Metric
}

func newProviderClient(name string, opts ClientOptions, l *logger.Logger, m *metric.Metric) *providerClient {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rest := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{l: l})

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		IsSuccessful: providerHealthy,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			l.Warning("circuit breaker state changed", map[string]any{
				"client": name,
				"from":   from.String(),
				"to":     to.String(),
			})
		},
	})

	return &providerClient{
		rest:    rest,
		breaker: breaker,
		apiKey:  strings.TrimSpace(opts.APIKey),
		l:       l,
		m:       m,
	}
}

func (c *providerClient) checkKey() error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: API key cannot be empty", models.ErrConfiguration)
	}
	return nil
}

// get calls path with query plus the credential and decodes the JSON body into result.
func (c *providerClient) get(ctx context.Context, endpoint, path string, query map[string]string, result any) error {
	params := make(map[string]string, len(query)+1)
	for k, v := range query {
		params[k] = v
	}
	params["appid"] = c.apiKey

	c.l.Info("making openweather API request", map[string]any{
		"endpoint": endpoint,
		"path":     path,
	})

	if err := ctx.Err(); err != nil {
		return &models.UpstreamError{Endpoint: endpoint, Err: err}
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.rest.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(path)
		if err != nil {
			return nil, &models.UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("failed to do request: %w", err)}
		}

		c.l.Info("received openweather API response", map[string]any{
			"endpoint":   endpoint,
			"status":     resp.StatusCode(),
			"statusText": resp.Status(),
		})

		if !resp.IsSuccess() {
			return nil, &models.UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode(), Status: resp.Status()}
		}
		return resp.Body(), nil
	})
	c.m.ObserveUpstream(endpoint, err == nil, time.Since(start))

	if err != nil {
		var upstreamErr *models.UpstreamError
		if errors.As(err, &upstreamErr) {
			return err
		}
		return &models.UpstreamError{Endpoint: endpoint, Err: err}
	}

	if err := json.Unmarshal(body.([]byte), result); err != nil {
		return &models.UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("failed to parse JSON response: %w", err)}
	}
	return nil
}

// providerHealthy reports whether a call result says nothing bad about the provider.
// Client errors and cancelled requests are the caller's doing; transport errors, 429 and 5xx trip the breaker.
func providerHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}

	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode >= 400 && upstreamErr.StatusCode < 500 {
		return upstreamErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// restyLogger routes resty's own diagnostics into the service logger.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error(fmt.Errorf(format, v...))
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warning(fmt.Sprintf(format, v...))
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug(fmt.Sprintf(format, v...))
}
