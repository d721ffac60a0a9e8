// Package source defines the boundary to the external health sample store.
// The core assumes returned samples end at or before now and are already
// de-duplicated; it independently re-validates spans and ranges.
package source

import (
	"context"
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

type Source interface {
	// IntervalSamples returns sleep interval samples within [start, end).
	IntervalSamples(ctx context.Context, start, end time.Time) ([]health.IntervalSample, error)

	// QuantitySeries returns the time-ordered point series of a metric
	// within [start, end).
	QuantitySeries(ctx context.Context, metric health.MetricType, start, end time.Time) ([]health.QuantitySample, error)

	// Latest returns the most recent observation of a metric, or nil when
	// the metric has never been observed.
	Latest(ctx context.Context, metric health.MetricType) (*health.QuantitySample, error)
}
