package baseline

import (
	"math"
	"sort"

	"github.com/garrettladley/pulse/internal/health"
)

const (
	// MinSamples is the minimum history required before a personal baseline
	// replaces the static prior.
	MinSamples = 14
	// MaxWindow bounds the trailing history used per baseline.
	MaxWindow = 30

	// stdDevFloorRatio keeps z-scores stable when history is nearly flat.
	stdDevFloorRatio = 0.05

	// DefaultScale maps ±3 sigma onto the 0-100 range.
	DefaultScale = 3.0
)

// Stats is a rolling baseline for one scalar metric.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// Compute derives baseline stats from a quantity series, using up to the
// last MaxWindow points by time. Returns nil when fewer than MinSamples
// points exist; the caller substitutes a static prior.
func Compute(series []health.QuantitySample) *Stats {
	if len(series) < MinSamples {
		return nil
	}

	sorted := make([]health.QuantitySample, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	if len(sorted) > MaxWindow {
		sorted = sorted[len(sorted)-MaxWindow:]
	}

	n := float64(len(sorted))
	var sum float64
	for _, p := range sorted {
		sum += p.Value
	}
	mean := sum / n

	var sq float64
	for _, p := range sorted {
		d := p.Value - mean
		sq += d * d
	}

	return &Stats{
		Mean:   mean,
		StdDev: math.Sqrt(sq / n),
		Count:  len(sorted),
	}
}

// EffectiveStdDev applies the floor that avoids unstable z-scores.
func (s Stats) EffectiveStdDev() float64 {
	floor := stdDevFloorRatio * s.Mean
	if s.StdDev < floor {
		return floor
	}
	return s.StdDev
}

// NormalizedScore maps value linearly onto 0-100 across ±DefaultScale
// standard deviations around the mean, clamping outside that band. It is
// monotonic non-decreasing in value for fixed stats.
func (s Stats) NormalizedScore(value float64) float64 {
	sd := s.EffectiveStdDev()
	if sd <= 0 {
		return 50
	}
	z := (value - s.Mean) / sd
	return health.Clamp((z + DefaultScale) / (2 * DefaultScale) * 100)
}
