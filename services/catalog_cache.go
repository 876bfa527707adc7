package services

import (
	"sync"
	"time"

	"movie-recommendation-engine/models"
)

// CatalogSource produces a catalog snapshot from some backing store.
type CatalogSource interface {
	Load() (models.Catalog, error)
	Name() string
}

// CSVCatalogSource loads the catalog from the CSV file at a fixed path.
type CSVCatalogSource struct {
	loader *CatalogLoader
	path   string
}

// NewCSVCatalogSource creates a CSV-backed catalog source
func NewCSVCatalogSource(loader *CatalogLoader, path string) *CSVCatalogSource {
	return &CSVCatalogSource{loader: loader, path: path}
}

// Load implements CatalogSource
func (s *CSVCatalogSource) Load() (models.Catalog, error) {
	return s.loader.LoadCatalog(s.path)
}

// Name implements CatalogSource
func (s *CSVCatalogSource) Name() string {
	return "csv:" + s.path
}

// CatalogStats describes the currently held snapshot.
type CatalogStats struct {
	Movies    int
	Source    string
	LoadedAt  time.Time
	ExpiresAt time.Time
}

// CatalogCache owns the load-once catalog and serves immutable
// snapshots to concurrent recommendation requests. A snapshot is
// reloaded after the TTL elapses or on explicit Reload; the swap is
// atomic, so a request always sees a complete catalog from exactly one
// load. When a reload fails the previous snapshot keeps being served.
type CatalogCache struct {
	mu       sync.RWMutex
	source   CatalogSource
	ttl      time.Duration
	logger   Logger
	catalog  models.Catalog
	loadedAt time.Time
}

// NewCatalogCache creates a catalog cache over the given source. A zero
// TTL disables time-based reloads; the catalog then only changes via
// Reload.
func NewCatalogCache(source CatalogSource, ttl time.Duration, logger Logger) *CatalogCache {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &CatalogCache{
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Snapshot returns the current catalog, loading or reloading it first
// when missing or expired. It never fails: when no load has ever
// succeeded the empty catalog is returned and callers treat it as the
// uniform not-ready signal.
func (c *CatalogCache) Snapshot() models.Catalog {
	c.mu.RLock()
	if !c.stale() {
		catalog := c.catalog
		c.mu.RUnlock()
		return catalog
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another request may have reloaded while we waited for the lock.
	if c.stale() {
		c.loadLocked()
	}
	return c.catalog
}

// Reload loads a fresh snapshot from the source and swaps it in
// atomically. On failure the previous snapshot is kept and returned
// alongside the error.
func (c *CatalogCache) Reload() (models.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

// loadLocked loads from the source with the write lock held.
func (c *CatalogCache) loadLocked() (models.Catalog, error) {
	catalog, err := c.source.Load()
	if err != nil {
		c.logger.Error("catalog reload failed", err, String("source", c.source.Name()))
		if c.loadedAt.IsZero() {
			c.catalog = models.EmptyCatalog()
		}
		return c.catalog, err
	}

	c.catalog = catalog
	c.loadedAt = time.Now()
	c.logger.Info("catalog snapshot swapped",
		String("source", c.source.Name()),
		Int("movies", catalog.Len()),
	)
	return c.catalog, nil
}

// Invalidate discards the current snapshot so the next Snapshot call
// reloads from the source.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedAt = time.Time{}
	c.catalog = models.EmptyCatalog()
}

// Stats returns details of the held snapshot.
func (c *CatalogCache) Stats() CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CatalogStats{
		Movies:   c.catalog.Len(),
		Source:   c.source.Name(),
		LoadedAt: c.loadedAt,
	}
	if c.ttl > 0 && !c.loadedAt.IsZero() {
		stats.ExpiresAt = c.loadedAt.Add(c.ttl)
	}
	return stats
}

// stale reports whether the snapshot must be (re)loaded. Callers hold at
// least a read lock.
func (c *CatalogCache) stale() bool {
	if c.loadedAt.IsZero() {
		return true
	}
	if c.ttl > 0 && time.Since(c.loadedAt) > c.ttl {
		return true
	}
	return false
}
