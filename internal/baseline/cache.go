package baseline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

var ErrNotCached = errors.New("baseline not cached")

// DefaultTTL is the validity window of a cached baseline.
const DefaultTTL = 24 * time.Hour

// Cache stores computed baselines per metric with a TTL.
type Cache interface {
	// Get returns the cached baseline for a metric.
	// Returns ErrNotCached when absent or expired.
	Get(ctx context.Context, metric health.MetricType) (Stats, error)

	Set(ctx context.Context, metric health.MetricType, stats Stats, ttl time.Duration) error
}

type memoryEntry struct {
	stats     Stats
	expiresAt time.Time
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[health.MetricType]memoryEntry

	now func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[health.MetricType]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, metric health.MetricType) (Stats, error) {
	c.mu.RLock()
	entry, ok := c.entries[metric]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return Stats{}, ErrNotCached
	}
	return entry.stats, nil
}

func (c *MemoryCache) Set(_ context.Context, metric health.MetricType, stats Stats, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[metric] = memoryEntry{
		stats:     stats,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
