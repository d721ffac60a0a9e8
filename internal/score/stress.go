package score

import (
	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/health"
)

const stressBase = 50

// StressInputs feed the stress proxy score, which reads only the HRV-to-
// baseline ratio.
type StressInputs struct {
	HRV         *float64 // ms
	HRVBaseline *baseline.Stats
}

// Stress computes the stress proxy. Higher values mean more stress, so the
// status mapping is inverted relative to the other scores: a high value is
// poor, a low value optimal.
func Stress(in StressInputs) health.ScoreState {
	if in.HRV == nil {
		return health.Unavailable("No HRV data")
	}
	if in.HRVBaseline == nil || in.HRVBaseline.Mean <= 0 {
		return health.Unavailable("No HRV baseline")
	}

	value := float64(stressBase)
	var factors []health.Factor
	switch ratio := *in.HRV / in.HRVBaseline.Mean; {
	case ratio < 0.8:
		value += 25
		factors = append(factors, health.Factor{Name: "hrv_suppressed", Delta: 25})
	case ratio > 1.1:
		value -= 20
		factors = append(factors, health.Factor{Name: "hrv_elevated", Delta: -20})
	}

	value = health.Clamp(value)
	return health.Computed(value, stressStatus(value), factors...)
}

func stressStatus(value float64) health.Status {
	switch {
	case value >= 65:
		return health.StatusPoor
	case value <= 35:
		return health.StatusOptimal
	default:
		return health.StatusModerate
	}
}
