// Package validity classifies each tracked metric's latest observation into
// a tri-state: valid, stale, or missing. Staleness is a pure function of
// now minus the last observation, re-evaluated on every upstream update.
package validity

import (
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

// Phase is the tri-state classification of a metric's latest observation.
type Phase string

const (
	// PhaseValid means a sample exists within the metric's recency threshold.
	PhaseValid Phase = "valid"
	// PhaseStale means a sample exists but exceeds the threshold.
	PhaseStale Phase = "stale"
	// PhaseMissing means no sample has ever been observed.
	PhaseMissing Phase = "missing"
)

// MetricState is the published classification of one metric.
type MetricState struct {
	Phase    Phase     `json:"phase"`
	Value    float64   `json:"value,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}

// Recency thresholds by metric class.
const (
	wearableThreshold = 7 * 24 * time.Hour
	manualThreshold   = 90 * 24 * time.Hour
	sameDayThreshold  = 24 * time.Hour
)

// Threshold returns the maximal observation age for a metric to count as
// valid. Wearable-derived metrics tolerate a week, manually-logged metrics
// ninety days, same-day vitals one day.
func Threshold(m health.MetricType) time.Duration {
	switch m {
	case health.MetricHRV, health.MetricRestingHeartRate:
		return wearableThreshold
	case health.MetricWeight:
		return manualThreshold
	default:
		return sameDayThreshold
	}
}

// Classify maps a last observation to its tri-state. A zero lastSeen means
// the metric was never observed. An observation aged exactly at the
// threshold is still valid.
func Classify(value float64, lastSeen, now time.Time, threshold time.Duration) MetricState {
	if lastSeen.IsZero() {
		return MetricState{Phase: PhaseMissing}
	}
	state := MetricState{Value: value, LastSeen: lastSeen}
	if now.Sub(lastSeen) <= threshold {
		state.Phase = PhaseValid
	} else {
		state.Phase = PhaseStale
	}
	return state
}
