package score

import (
	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/health"
)

const (
	strainWeightSteps  = 0.40
	strainWeightEnergy = 0.60

	// Low-activity guard: below both bounds the score is exactly zero so an
	// early-day reading never looks like real strain.
	lowActivityStepsBound  = 1000
	lowActivityEnergyBound = 200
)

// StrainInputs are the validated metrics feeding the strain score. A nil
// baseline, or one resolved from a static prior, selects the fixed absolute
// curve for that component.
type StrainInputs struct {
	Steps          *float64
	StepsBaseline  *baseline.Resolved
	Energy         *float64 // kcal
	EnergyBaseline *baseline.Resolved
}

// Strain blends a steps component and an energy component. Each component
// uses personal-baseline z-score normalization when enough history exists
// and a fixed piecewise curve otherwise.
func Strain(in StrainInputs) health.ScoreState {
	if in.Steps == nil && in.Energy == nil {
		return health.Unavailable("No steps or active energy data")
	}

	if in.Steps != nil && in.Energy != nil &&
		*in.Steps < lowActivityStepsBound && *in.Energy < lowActivityEnergyBound {
		return health.Computed(0, health.StatusPoor,
			health.Factor{Name: "low_activity_guard", Delta: 0})
	}

	var (
		value   float64
		factors []health.Factor
	)
	switch {
	case in.Steps != nil && in.Energy != nil:
		steps := componentScore(*in.Steps, in.StepsBaseline, stepsCurve)
		energy := componentScore(*in.Energy, in.EnergyBaseline, energyCurve)
		value = steps*strainWeightSteps + energy*strainWeightEnergy
		factors = []health.Factor{
			{Name: "steps", Delta: steps * strainWeightSteps},
			{Name: "energy", Delta: energy * strainWeightEnergy},
		}
	case in.Steps != nil:
		value = componentScore(*in.Steps, in.StepsBaseline, stepsCurve)
		factors = []health.Factor{{Name: "steps", Delta: value}}
	default:
		value = componentScore(*in.Energy, in.EnergyBaseline, energyCurve)
		factors = []health.Factor{{Name: "energy", Delta: value}}
	}

	value = health.Clamp(value)
	return health.Computed(value, status(value, 70, 40), factors...)
}

func componentScore(value float64, b *baseline.Resolved, curve func(float64) float64) float64 {
	if b != nil && b.Personal {
		return b.Stats.NormalizedScore(value)
	}
	return curve(value)
}

func stepsCurve(steps float64) float64 {
	switch {
	case steps >= 15000:
		return 100
	case steps >= 12000:
		return 85
	case steps >= 10000:
		return 75
	case steps >= 7500:
		return 60
	case steps >= 5000:
		return 45
	case steps >= 2500:
		return 25
	default:
		return 10
	}
}

func energyCurve(kcal float64) float64 {
	switch {
	case kcal >= 900:
		return 100
	case kcal >= 700:
		return 85
	case kcal >= 500:
		return 70
	case kcal >= 350:
		return 55
	case kcal >= 200:
		return 35
	default:
		return 10
	}
}
