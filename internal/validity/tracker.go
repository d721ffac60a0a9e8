package validity

import (
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

type observation struct {
	value  float64
	seenAt time.Time
}

// Tracker holds the last observation per metric. It has no other state:
// classification is recomputed from now on every read, so a prior
// classification is never retained once a newer sample is known. The
// tracker is owned by a single goroutine and is not safe for concurrent
// use.
type Tracker struct {
	observations map[health.MetricType]observation
}

func NewTracker() *Tracker {
	return &Tracker{observations: make(map[health.MetricType]observation)}
}

// Observe records a metric observation. Older observations than the one
// already held are ignored.
func (t *Tracker) Observe(metric health.MetricType, value float64, seenAt time.Time) {
	if cur, ok := t.observations[metric]; ok && seenAt.Before(cur.seenAt) {
		return
	}
	t.observations[metric] = observation{value: value, seenAt: seenAt}
}

// State classifies the metric's latest observation as of now.
func (t *Tracker) State(metric health.MetricType, now time.Time) MetricState {
	obs, ok := t.observations[metric]
	if !ok {
		return MetricState{Phase: PhaseMissing}
	}
	return Classify(obs.value, obs.seenAt, now, Threshold(metric))
}

// States classifies every tracked metric as of now.
func (t *Tracker) States(now time.Time) map[health.MetricType]MetricState {
	states := make(map[health.MetricType]MetricState, len(health.Tracked()))
	for _, m := range health.Tracked() {
		states[m] = t.State(m, now)
	}
	return states
}
