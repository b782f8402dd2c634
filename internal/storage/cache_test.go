package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycast/internal/models"
	"skycast/internal/storage"
	"skycast/pkg/logger"
)

func testSnapshot(city string) models.Snapshot {
	current := models.ForecastEntry{Timestamp: "2025-07-25 12:00:00", TemperatureKelvin: 295.15, SkyCondition: "Clear"}
	return models.Snapshot{
		City:        city,
		Coordinates: models.Coordinates{Latitude: 51.5073, Longitude: -0.1276},
		Current:     current,
		AirQuality:  models.AirQuality{AQI: 2, PM25: 8.4, PM10: 12.9},
		Series:      []models.ForecastEntry{current},
	}
}

func openStore(t *testing.T, opts ...storage.Option) *storage.CacheStore {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "nested", "cache.db"), logger.NewZapLogger("test-app", "test", io.Discard), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestCacheStore_GetEmpty(t *testing.T) {
	store := openStore(t)

	_, ok, err := store.Get(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheStore_RoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	before := time.Now()
	require.NoError(t, store.Put(ctx, testSnapshot("London")))
	after := time.Now()

	record, ok, err := store.Get(ctx)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSnapshot("London"), record.Snapshot)
	assert.False(t, record.FetchedAt.Before(before), "fetched_at %s before %s", record.FetchedAt, before)
	assert.False(t, record.FetchedAt.After(after), "fetched_at %s after %s", record.FetchedAt, after)
}

func TestCacheStore_LastWriteWins(t *testing.T) {
	now := time.Date(2025, 7, 25, 10, 0, 0, 0, time.UTC)
	store := openStore(t, storage.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSnapshot("London")))
	now = now.Add(2 * time.Hour)
	require.NoError(t, store.Put(ctx, testSnapshot("Paris")))

	record, ok, err := store.Get(ctx)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Paris", record.Snapshot.City)
	assert.True(t, now.Equal(record.FetchedAt), "fetched_at %s", record.FetchedAt)
}

func TestCacheStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	store, err := storage.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, testSnapshot("Oslo")))
	require.NoError(t, store.Close())

	store, err = storage.Open(path, nil)
	require.NoError(t, err)
	defer store.Close()

	record, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Oslo", record.Snapshot.City)
}

func TestCacheStore_OpenUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := storage.Open(filepath.Join(blocker, "cache.db"), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestCacheStore_KeepsSubSecondPrecision(t *testing.T) {
	fetchedAt := time.Date(2025, 7, 25, 10, 0, 0, 987654321, time.UTC)
	store := openStore(t, storage.WithClock(func() time.Time { return fetchedAt }))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSnapshot("London")))
	record, ok, err := store.Get(ctx)

	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, fetchedAt.Equal(record.FetchedAt), "fetched_at %s", record.FetchedAt)
	assert.Zero(t, record.Age(fetchedAt))
}
