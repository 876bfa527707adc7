package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

// fakeCatalogSource returns a scripted sequence of load results.
type fakeCatalogSource struct {
	loads   int
	catalog models.Catalog
	err     error
}

func (f *fakeCatalogSource) Load() (models.Catalog, error) {
	f.loads++
	if f.err != nil {
		return models.EmptyCatalog(), f.err
	}
	return f.catalog, nil
}

func (f *fakeCatalogSource) Name() string {
	return "fake"
}

func smallCatalog() models.Catalog {
	return models.NewCatalog([]models.MovieRecord{
		movie("A", 2001, "Action", "", 7.0),
		movie("B", 2002, "Drama", "", 8.0),
	})
}

func TestCatalogCacheSnapshot(t *testing.T) {
	t.Run("loads lazily on first snapshot", func(t *testing.T) {
		source := &fakeCatalogSource{catalog: smallCatalog()}
		cache := NewCatalogCache(source, 0, testLogger())

		snapshot := cache.Snapshot()

		assert.Equal(t, 2, snapshot.Len())
		assert.Equal(t, 1, source.loads)
	})

	t.Run("zero ttl loads exactly once", func(t *testing.T) {
		source := &fakeCatalogSource{catalog: smallCatalog()}
		cache := NewCatalogCache(source, 0, testLogger())

		cache.Snapshot()
		cache.Snapshot()
		cache.Snapshot()

		assert.Equal(t, 1, source.loads)
	})

	t.Run("expired ttl triggers reload", func(t *testing.T) {
		source := &fakeCatalogSource{catalog: smallCatalog()}
		cache := NewCatalogCache(source, time.Nanosecond, testLogger())

		cache.Snapshot()
		time.Sleep(time.Millisecond)
		cache.Snapshot()

		assert.Equal(t, 2, source.loads)
	})

	t.Run("failed first load serves empty catalog", func(t *testing.T) {
		source := &fakeCatalogSource{
			err: errors.NewValidationError(errors.ErrCodeCatalogEmpty, "no rows", nil),
		}
		cache := NewCatalogCache(source, 0, testLogger())

		snapshot := cache.Snapshot()

		assert.True(t, snapshot.IsEmpty())
		assert.NotNil(t, snapshot.Movies)
	})
}

func TestCatalogCacheReload(t *testing.T) {
	t.Run("reload always hits the source", func(t *testing.T) {
		source := &fakeCatalogSource{catalog: smallCatalog()}
		cache := NewCatalogCache(source, 0, testLogger())

		cache.Snapshot()
		catalog, err := cache.Reload()

		require.NoError(t, err)
		assert.Equal(t, 2, catalog.Len())
		assert.Equal(t, 2, source.loads)
	})

	t.Run("failed reload keeps the previous snapshot", func(t *testing.T) {
		source := &fakeCatalogSource{catalog: smallCatalog()}
		cache := NewCatalogCache(source, 0, testLogger())
		cache.Snapshot()

		source.err = errors.NewDatabaseError(errors.ErrCodeDatabaseQuery, "connection lost", nil)
		catalog, err := cache.Reload()

		require.Error(t, err)
		assert.Equal(t, 2, catalog.Len())
		assert.Equal(t, 2, cache.Snapshot().Len())
	})
}

func TestCatalogCacheInvalidate(t *testing.T) {
	source := &fakeCatalogSource{catalog: smallCatalog()}
	cache := NewCatalogCache(source, 0, testLogger())

	cache.Snapshot()
	cache.Invalidate()
	cache.Snapshot()

	assert.Equal(t, 2, source.loads)
}

func TestCatalogCacheStats(t *testing.T) {
	source := &fakeCatalogSource{catalog: smallCatalog()}
	cache := NewCatalogCache(source, time.Hour, testLogger())

	t.Run("before first load", func(t *testing.T) {
		stats := cache.Stats()
		assert.Equal(t, 0, stats.Movies)
		assert.Equal(t, "fake", stats.Source)
		assert.True(t, stats.LoadedAt.IsZero())
	})

	t.Run("after load", func(t *testing.T) {
		cache.Snapshot()

		stats := cache.Stats()
		assert.Equal(t, 2, stats.Movies)
		assert.False(t, stats.LoadedAt.IsZero())
		assert.Equal(t, stats.LoadedAt.Add(time.Hour), stats.ExpiresAt)
	})
}

func TestCatalogCacheConcurrentSnapshots(t *testing.T) {
	source := &fakeCatalogSource{catalog: smallCatalog()}
	cache := NewCatalogCache(source, 0, testLogger())
	cache.Snapshot()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				snapshot := cache.Snapshot()
				assert.Equal(t, 2, snapshot.Len())
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
