package sleep

import (
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

// accumulateStages sums sample durations into stage buckets in chronological
// order. Unspecified asleep time is apportioned proportionally to the
// core:deep:rem ratio accumulated so far; before any specified stage has
// accumulated, it all lands in core. The apportionment is order-dependent
// when unspecified samples interleave with specified ones.
func accumulateStages(samples []health.IntervalSample) Stages {
	var stages Stages
	for _, s := range samples {
		d := s.Duration()
		switch s.Category {
		case health.SleepAsleepCore:
			stages.Core += d
		case health.SleepAsleepDeep:
			stages.Deep += d
		case health.SleepAsleepREM:
			stages.REM += d
		case health.SleepAwake:
			stages.Awake += d
		case health.SleepAsleepUnspecified:
			stages = apportionUnspecified(stages, d)
		}
	}
	return stages
}

func apportionUnspecified(stages Stages, d time.Duration) Stages {
	total := stages.TotalAsleep()
	if total <= 0 {
		stages.Core += d
		return stages
	}
	core := time.Duration(float64(d) * float64(stages.Core) / float64(total))
	deep := time.Duration(float64(d) * float64(stages.Deep) / float64(total))
	// Remainder goes to REM so no time is lost to rounding.
	stages.REM += d - core - deep
	stages.Core += core
	stages.Deep += deep
	return stages
}

// countWakeEvents counts transitions from an asleep state to awake. Repeated
// awake samples without an intervening asleep sample count once.
func countWakeEvents(samples []health.IntervalSample) int {
	var (
		events int
		asleep bool
	)
	for _, s := range samples {
		switch {
		case s.Category.Asleep():
			asleep = true
		case s.Category == health.SleepAwake:
			if asleep {
				events++
				asleep = false
			}
		}
	}
	return events
}
