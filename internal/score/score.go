// Package score holds the four daily score computations. Every scorer is a
// pure function over validated metrics and baselines: identical inputs
// always produce identical output, and missing inputs map to an unavailable
// state with a reason, never to a zero score.
package score

import "github.com/garrettladley/pulse/internal/health"

func status(value float64, optimal, moderate float64) health.Status {
	switch {
	case value >= optimal:
		return health.StatusOptimal
	case value >= moderate:
		return health.StatusModerate
	default:
		return health.StatusPoor
	}
}
