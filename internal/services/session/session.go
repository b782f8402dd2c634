// Package session drives the fetch -> display -> fallback cycle for one user.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"skycast/internal/models"
	"skycast/internal/repositories"
	"skycast/pkg/logger"
	"skycast/pkg/metric"
)

// StalenessThreshold is the age after which a cached snapshot is no longer shown.
const StalenessThreshold = 24 * time.Hour

type State string

const (
	Idle          State = "idle"
	Fetching      State = "fetching"
	Visible       State = "visible"
	StaleFallback State = "stale_fallback"
	Unavailable   State = "unavailable"
)

// Cache is the durable slot holding the last successful snapshot.
type Cache interface {
	Put(ctx context.Context, snapshot models.Snapshot) error
	Get(ctx context.Context) (models.CacheRecord, bool, error)
}

// View is what the UI renders for the current state.
// Snapshot is set for Visible and StaleFallback only. Err is the fetch error behind
// StaleFallback and Unavailable.
type View struct {
	State     State
	RequestID string
	City      string
	Snapshot  *models.Snapshot
	FetchedAt time.Time
	Err       error
}

func (v View) Stale() bool {
	return v.State == StaleFallback
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

type observer struct {
	id int
	fn func(View)
}

type Session struct {
	fetcher  repositories.SnapshotFetcher
	geocoder repositories.Geocoder
	cache    Cache
	l        *logger.Logger
	m        *metric.Metric
	now      func() time.Time

	// requests holds one request at a time so views and cache writes follow request order.
	requests chan struct{}

	mu        sync.RWMutex
	view      View
	observers []observer
	nextID    int
}

// New builds an idle session. cache may be nil, in which case every failure is Unavailable.
func New(fetcher repositories.SnapshotFetcher, geocoder repositories.Geocoder, cache Cache, l *logger.Logger, m *metric.Metric, opts ...Option) *Session {
	s := &Session{
		fetcher:  fetcher,
		geocoder: geocoder,
		cache:    cache,
		l:        l,
		m:        m,
		now:      time.Now,
		requests: make(chan struct{}, 1),
		view:     View{State: Idle},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the latest view without fetching.
func (s *Session) Current() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Subscribe registers fn for every state change and returns a function that removes it.
// fn runs on the requesting goroutine and must not call back into RequestCity.
func (s *Session) Subscribe(fn func(View)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// RequestCity fetches a fresh snapshot for city and returns the resulting view.
// A request still waiting for an earlier one when ctx ends returns an Unavailable view carrying
// ctx.Err() and leaves the session state untouched.
func (s *Session) RequestCity(ctx context.Context, city string) View {
	if err := s.acquire(ctx); err != nil {
		return View{State: Unavailable, City: city, Err: err}
	}
	defer s.release()

	id := uuid.NewString()
	s.transition(View{State: Fetching, RequestID: id, City: city})

	return s.fetch(ctx, id, city)
}

// RequestCurrentLocation resolves the coordinates to a city name and fetches it.
// A failed lookup is handled like a failed fetch.
func (s *Session) RequestCurrentLocation(ctx context.Context, lat, lon float64) View {
	if err := s.acquire(ctx); err != nil {
		return View{State: Unavailable, Err: err}
	}
	defer s.release()

	id := uuid.NewString()
	s.transition(View{State: Fetching, RequestID: id})

	city, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		l := s.l.With(map[string]any{"request_id": id, "latitude": lat, "longitude": lon})
		return s.fallback(ctx, l, View{RequestID: id}, errors.Wrap(err, "failed to resolve current location"))
	}

	return s.fetch(ctx, id, city)
}

func (s *Session) acquire(ctx context.Context) error {
	select {
	case s.requests <- struct{}{}:
		return nil
	default:
	}

	select {
	case s.requests <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "gave up waiting for an earlier request")
	}
}

func (s *Session) release() {
	<-s.requests
}

func (s *Session) fetch(ctx context.Context, id, city string) View {
	l := s.l.With(map[string]any{"request_id": id, "city": city})
	base := View{RequestID: id, City: city}

	start := s.now()
	snapshot, err := s.fetcher.FetchSnapshot(ctx, city)
	if err != nil {
		return s.fallback(ctx, l, base, err)
	}

	// The cache write outlives a cancelled request.
	if err := s.put(context.WithoutCancel(ctx), snapshot); err != nil {
		l.Error(errors.Wrap(err, "failed to cache snapshot"))
	}

	l.Info("snapshot fetched", map[string]any{
		"entries":  len(snapshot.Series),
		"duration": s.now().Sub(start).String(),
	})

	base.State = Visible
	base.Snapshot = &snapshot
	base.FetchedAt = s.now()
	return s.transition(base)
}

func (s *Session) fallback(ctx context.Context, l *logger.Logger, base View, fetchErr error) View {
	l.Warning("fetch failed", map[string]any{"error": fetchErr.Error()})

	base.Err = fetchErr
	base.State = Unavailable

	if s.cache == nil {
		return s.transition(base)
	}

	record, ok, err := s.cache.Get(context.WithoutCancel(ctx))
	switch {
	case err != nil:
		l.Error(errors.Wrap(err, "failed to read cached snapshot"))
	case !ok:
		l.Info("no cached snapshot")
	case record.Age(s.now()) >= StalenessThreshold:
		l.Info("cached snapshot too old", map[string]any{"fetched_at": record.FetchedAt, "age": record.Age(s.now()).String()})
	default:
		base.State = StaleFallback
		base.Snapshot = &record.Snapshot
		base.FetchedAt = record.FetchedAt
	}

	return s.transition(base)
}

func (s *Session) put(ctx context.Context, snapshot models.Snapshot) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Put(ctx, snapshot)
}

func (s *Session) transition(v View) View {
	s.mu.Lock()
	s.view = v
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.m.AddTransition(string(v.State))
	for _, o := range observers {
		o.fn(v)
	}

	return v
}
