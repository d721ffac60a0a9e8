package baseline

import (
	"context"
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

// Resolved is a baseline plus its provenance. Personal is true only when the
// stats were computed from sufficient history rather than a static prior.
type Resolved struct {
	Stats    Stats
	Personal bool
}

// Engine resolves per-metric baselines with caching. A series change always
// triggers an eager recompute when the cached value is stale.
type Engine struct {
	cache Cache
	ttl   time.Duration
}

func NewEngine(cache Cache, ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Engine{cache: cache, ttl: ttl}
}

// Resolve returns the baseline for a metric given its backing series,
// preferring a fresh cached value, recomputing otherwise, and falling back
// to the static prior when history is insufficient. The second return is
// false when neither history nor a prior exists. A broken cache backend
// degrades to recomputation, never to a missing baseline.
func (e *Engine) Resolve(ctx context.Context, metric health.MetricType, series []health.QuantitySample) (Resolved, bool) {
	if cached, err := e.cache.Get(ctx, metric); err == nil && cached.Count >= MinSamples {
		return Resolved{Stats: cached, Personal: true}, true
	}

	if stats := Compute(series); stats != nil {
		_ = e.cache.Set(ctx, metric, *stats, e.ttl)
		return Resolved{Stats: *stats, Personal: true}, true
	}

	prior, ok := Prior(metric)
	if !ok {
		return Resolved{}, false
	}
	return Resolved{Stats: prior}, true
}
