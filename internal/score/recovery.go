package score

import (
	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/health"
)

// RecoveryInputs are the validated metrics feeding the recovery score. Nil
// pointers mean the input is absent (missing or stale upstream).
type RecoveryInputs struct {
	HRV         *float64 // ms
	HRVBaseline *baseline.Stats
	RHR         *float64 // bpm
	RHRBaseline *baseline.Stats
	// SleepEfficiency is the primary session's efficiency in [0,1].
	SleepEfficiency *float64
}

const recoveryBase = 50

// Recovery computes the daily recovery score: a 50 base adjusted by fixed
// physiological bands, personal-baseline deltas, and sleep efficiency.
func Recovery(in RecoveryInputs) health.ScoreState {
	if in.HRV == nil && in.RHR == nil && in.SleepEfficiency == nil {
		return health.Unavailable("No HRV, RHR, or sleep data")
	}

	value := float64(recoveryBase)
	var factors []health.Factor
	add := func(name string, delta float64) {
		value += delta
		factors = append(factors, health.Factor{Name: name, Delta: delta})
	}

	if in.HRV != nil {
		add("hrv_band", hrvBand(*in.HRV))
		if in.HRVBaseline != nil && in.HRVBaseline.Mean > 0 {
			switch ratio := *in.HRV / in.HRVBaseline.Mean; {
			case ratio > 1.1:
				add("hrv_above_baseline", 10)
			case ratio < 0.8:
				add("hrv_below_baseline", -10)
			}
		}
	}

	if in.RHR != nil {
		add("rhr_band", rhrBand(*in.RHR))
		if in.RHRBaseline != nil && in.RHRBaseline.Mean > 0 {
			switch delta := *in.RHR - in.RHRBaseline.Mean; {
			case delta < -3:
				add("rhr_below_baseline", 8)
			case delta > 3:
				add("rhr_above_baseline", -8)
			}
		}
	}

	if in.SleepEfficiency != nil {
		switch eff := *in.SleepEfficiency; {
		case eff >= 0.85:
			add("sleep_efficiency", 15)
		case eff < 0.65:
			add("sleep_efficiency", -12)
		}
	}

	value = health.Clamp(value)
	return health.Computed(value, status(value, 75, 50), factors...)
}

func hrvBand(hrv float64) float64 {
	switch {
	case hrv >= 70:
		return 20
	case hrv >= 40:
		return 15
	case hrv >= 30:
		return 5
	case hrv >= 20:
		return -8
	default:
		return -15
	}
}

func rhrBand(rhr float64) float64 {
	switch {
	case rhr < 50:
		return 15
	case rhr < 60:
		return 10
	case rhr < 70:
		return 0
	case rhr < 80:
		return -8
	default:
		return -15
	}
}
