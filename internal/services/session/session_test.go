package session_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycast/internal/models"
	"skycast/internal/services/session"
	"skycast/internal/storage"
	"skycast/pkg/logger"
	"skycast/pkg/metric"
)

var errProvider = &models.UpstreamError{Endpoint: "forecast", StatusCode: 503, Status: "503 Service Unavailable"}

type fakeFetcher struct {
	mu       sync.Mutex
	snapshot models.Snapshot
	err      error
	cities   []string

	inFlight, maxInFlight atomic.Int32
	delay                 time.Duration

	// started and release, when set, let a test hold a fetch open.
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) FetchSnapshot(_ context.Context, city string) (models.Snapshot, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	if n > f.maxInFlight.Load() {
		f.maxInFlight.Store(n)
	}
	time.Sleep(f.delay)
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cities = append(f.cities, city)
	if f.err != nil {
		return models.Snapshot{}, f.err
	}
	s := f.snapshot
	s.City = city
	return s, nil
}

type fakeGeocoder struct {
	city string
	err  error
}

func (g *fakeGeocoder) Forward(context.Context, string) (models.Coordinates, error) {
	return models.Coordinates{}, errors.New("not used")
}

func (g *fakeGeocoder) Reverse(context.Context, float64, float64) (string, error) {
	return g.city, g.err
}

type fakeCache struct {
	record models.CacheRecord
	ok     bool
	getErr error
	putErr error
	puts   []models.Snapshot
}

func (c *fakeCache) Put(_ context.Context, snapshot models.Snapshot) error {
	if c.putErr != nil {
		return c.putErr
	}
	c.puts = append(c.puts, snapshot)
	return nil
}

func (c *fakeCache) Get(context.Context) (models.CacheRecord, bool, error) {
	return c.record, c.ok, c.getErr
}

var now = time.Date(2025, 7, 25, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func testLogger() *logger.Logger {
	return logger.NewZapLogger("test-app", "test", io.Discard)
}

func snapshotFor(city string) models.Snapshot {
	current := models.ForecastEntry{Timestamp: "2025-07-25 12:00:00", TemperatureKelvin: 295.15, SkyCondition: "Clear"}
	return models.Snapshot{City: city, Current: current, Series: []models.ForecastEntry{current}}
}

func newSession(f *fakeFetcher, g *fakeGeocoder, c session.Cache) *session.Session {
	return session.New(f, g, c, testLogger(), nil, session.WithClock(clock))
}

func TestSession_StartsIdle(t *testing.T) {
	s := newSession(&fakeFetcher{}, &fakeGeocoder{}, nil)

	assert.Equal(t, session.Idle, s.Current().State)
}

func TestSession_SuccessIsVisibleAndCached(t *testing.T) {
	cache := &fakeCache{}
	s := newSession(&fakeFetcher{snapshot: snapshotFor("")}, &fakeGeocoder{}, cache)

	view := s.RequestCity(context.Background(), "London")

	assert.Equal(t, session.Visible, view.State)
	require.NotNil(t, view.Snapshot)
	assert.Equal(t, "London", view.Snapshot.City)
	assert.Equal(t, now, view.FetchedAt)
	assert.NoError(t, view.Err)
	assert.NotEmpty(t, view.RequestID)
	require.Len(t, cache.puts, 1)
	assert.Equal(t, "London", cache.puts[0].City)
	assert.Equal(t, view, s.Current())
}

func TestSession_PutFailureStillVisible(t *testing.T) {
	cache := &fakeCache{putErr: models.ErrStorageUnavailable}
	s := newSession(&fakeFetcher{snapshot: snapshotFor("")}, &fakeGeocoder{}, cache)

	view := s.RequestCity(context.Background(), "London")

	assert.Equal(t, session.Visible, view.State)
}

func TestSession_Fallback(t *testing.T) {
	cached := snapshotFor("Paris")

	tests := []struct {
		name      string
		cache     session.Cache
		wantState session.State
	}{
		{"recent cache", &fakeCache{ok: true, record: models.CacheRecord{Snapshot: cached, FetchedAt: now.Add(-2 * time.Hour)}}, session.StaleFallback},
		{"just under threshold", &fakeCache{ok: true, record: models.CacheRecord{Snapshot: cached, FetchedAt: now.Add(-session.StalenessThreshold + time.Second)}}, session.StaleFallback},
		{"exactly at threshold", &fakeCache{ok: true, record: models.CacheRecord{Snapshot: cached, FetchedAt: now.Add(-session.StalenessThreshold)}}, session.Unavailable},
		{"old cache", &fakeCache{ok: true, record: models.CacheRecord{Snapshot: cached, FetchedAt: now.Add(-30 * time.Hour)}}, session.Unavailable},
		{"empty cache", &fakeCache{}, session.Unavailable},
		{"cache unreadable", &fakeCache{getErr: models.ErrStorageUnavailable}, session.Unavailable},
		{"no cache", nil, session.Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(&fakeFetcher{err: errProvider}, &fakeGeocoder{}, tt.cache)

			view := s.RequestCity(context.Background(), "London")

			assert.Equal(t, tt.wantState, view.State)
			assert.ErrorIs(t, view.Err, models.ErrUpstream)
			if tt.wantState == session.StaleFallback {
				assert.True(t, view.Stale())
				require.NotNil(t, view.Snapshot)
				assert.Equal(t, "Paris", view.Snapshot.City)
				assert.True(t, view.FetchedAt.Before(now))
			} else {
				assert.Nil(t, view.Snapshot)
			}
		})
	}
}

func TestSession_FallbackWithSQLiteCache(t *testing.T) {
	fetchedAt := now.Add(-2 * time.Hour)
	store, err := storage.Open(filepath.Join(t.TempDir(), "cache.db"), nil,
		storage.WithClock(func() time.Time { return fetchedAt }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	fetcher := &fakeFetcher{snapshot: snapshotFor("")}
	s := newSession(fetcher, &fakeGeocoder{}, store)
	require.Equal(t, session.Visible, s.RequestCity(context.Background(), "London").State)

	fetcher.err = errProvider
	view := s.RequestCity(context.Background(), "Berlin")

	assert.Equal(t, session.StaleFallback, view.State)
	require.NotNil(t, view.Snapshot)
	assert.Equal(t, "London", view.Snapshot.City)
	assert.True(t, fetchedAt.Equal(view.FetchedAt))
	assert.Equal(t, "Berlin", view.City)
}

func TestSession_InvalidCityFallsBack(t *testing.T) {
	s := newSession(&fakeFetcher{err: models.ErrInvalidInput}, &fakeGeocoder{}, &fakeCache{})

	view := s.RequestCity(context.Background(), "")

	assert.Equal(t, session.Unavailable, view.State)
	assert.ErrorIs(t, view.Err, models.ErrInvalidInput)
}

func TestSession_CurrentLocation(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: snapshotFor("")}
	s := newSession(fetcher, &fakeGeocoder{city: "Lisbon"}, &fakeCache{})

	view := s.RequestCurrentLocation(context.Background(), 38.72, -9.14)

	assert.Equal(t, session.Visible, view.State)
	assert.Equal(t, "Lisbon", view.City)
	assert.Equal(t, []string{"Lisbon"}, fetcher.cities)
}

func TestSession_CurrentLocationLookupFails(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: snapshotFor("")}
	cache := &fakeCache{ok: true, record: models.CacheRecord{Snapshot: snapshotFor("Paris"), FetchedAt: now.Add(-time.Hour)}}
	s := newSession(fetcher, &fakeGeocoder{err: models.ErrNotFound}, cache)

	view := s.RequestCurrentLocation(context.Background(), 0, 0)

	assert.Equal(t, session.StaleFallback, view.State)
	assert.ErrorIs(t, view.Err, models.ErrNotFound)
	assert.Empty(t, fetcher.cities)
}

func TestSession_ObserversSeeEveryTransition(t *testing.T) {
	s := newSession(&fakeFetcher{snapshot: snapshotFor("")}, &fakeGeocoder{}, &fakeCache{})

	var states []session.State
	unsubscribe := s.Subscribe(func(v session.View) { states = append(states, v.State) })

	s.RequestCity(context.Background(), "London")
	unsubscribe()
	unsubscribe()
	s.RequestCity(context.Background(), "Paris")

	assert.Equal(t, []session.State{session.Fetching, session.Visible}, states)
}

func TestSession_RequestsAreSerialized(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: snapshotFor(""), delay: 10 * time.Millisecond}
	s := newSession(fetcher, &fakeGeocoder{}, &fakeCache{})

	var wg sync.WaitGroup
	for _, city := range []string{"London", "Paris", "Rome", "Oslo"} {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RequestCity(context.Background(), city)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.maxInFlight.Load())
	assert.Len(t, fetcher.cities, 4)
	assert.Equal(t, session.Visible, s.Current().State)
}

func TestSession_CountsTransitions(t *testing.T) {
	m := metric.New(prometheus.NewRegistry())
	s := session.New(&fakeFetcher{err: errProvider}, &fakeGeocoder{}, nil, testLogger(), m, session.WithClock(clock))

	s.RequestCity(context.Background(), "London")
	s.RequestCity(context.Background(), "London")

	assert.Equal(t, 2, testutil.CollectAndCount(m.TransitionsCollector()))
}

func TestSession_WaitingRequestHonoursContext(t *testing.T) {
	fetcher := &fakeFetcher{
		snapshot: snapshotFor(""),
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	s := newSession(fetcher, &fakeGeocoder{city: "Lisbon"}, &fakeCache{})

	done := make(chan session.View)
	go func() {
		done <- s.RequestCity(context.Background(), "London")
	}()
	<-fetcher.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	view := s.RequestCity(ctx, "Paris")
	assert.Equal(t, session.Unavailable, view.State)
	assert.ErrorIs(t, view.Err, context.DeadlineExceeded)

	view = s.RequestCurrentLocation(ctx, 38.72, -9.14)
	assert.Equal(t, session.Unavailable, view.State)
	assert.ErrorIs(t, view.Err, context.DeadlineExceeded)

	assert.Equal(t, session.Fetching, s.Current().State)
	assert.Equal(t, "London", s.Current().City)

	close(fetcher.release)
	first := <-done

	assert.Equal(t, session.Visible, first.State)
	assert.Equal(t, session.Visible, s.Current().State)
	assert.Equal(t, []string{"London"}, fetcher.cities)
}
