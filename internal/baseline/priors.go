package baseline

import "github.com/garrettladley/pulse/internal/health"

// priors are conservative static baselines used until enough personal
// history accumulates. Count is zero to mark them as non-personal.
var priors = map[health.MetricType]Stats{
	health.MetricSteps:            {Mean: 8000, StdDev: 2000},
	health.MetricActiveEnergy:     {Mean: 450, StdDev: 150},
	health.MetricHRV:              {Mean: 45, StdDev: 15},
	health.MetricRestingHeartRate: {Mean: 60, StdDev: 8},
	health.MetricSleepDuration:    {Mean: 7.5, StdDev: 1},
	health.MetricRespiratoryRate:  {Mean: 15, StdDev: 2},
}

// Prior returns the static fallback baseline for a metric. The second return
// is false when no prior is defined for the metric.
func Prior(m health.MetricType) (Stats, bool) {
	s, ok := priors[m]
	return s, ok
}
