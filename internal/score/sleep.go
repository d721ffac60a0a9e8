package score

import (
	"time"

	"github.com/garrettladley/pulse/internal/health"
	"github.com/garrettladley/pulse/internal/sleep"
)

// Component weights of the comprehensive sleep score.
const (
	sleepWeightDuration      = 0.40
	sleepWeightEfficiency    = 0.25
	sleepWeightREM           = 0.15
	sleepWeightDeep          = 0.15
	sleepWeightFragmentation = 0.05
)

// Sleep computes the comprehensive sleep score from a full session. When no
// session is available it falls back to the basic duration-plus-efficiency
// formula over the daily summary; with neither, the score is unavailable.
func Sleep(session *sleep.Session, summary *sleep.DailySummary) health.ScoreState {
	if session != nil {
		return comprehensiveSleep(*session)
	}
	if summary != nil && summary.HasData() {
		return basicSleep(summary.TotalDuration, summary.AverageEfficiency, summary.TotalWakeEvents)
	}
	return health.Unavailable("No sleep data")
}

func comprehensiveSleep(s sleep.Session) health.ScoreState {
	durScore := durationScore(s.Duration)
	effScore := efficiencyScore(s.Efficiency)
	remScore := bandScore(s.Stages.REMPercent(), 20, 25)
	deepScore := bandScore(s.Stages.DeepPercent(), 15, 20)
	fragScore := fragmentationScore(s.Metrics.FragmentationIndex)
	penalty := wasoPenalty(s.Metrics.WASO)

	value := durScore*sleepWeightDuration +
		effScore*sleepWeightEfficiency +
		remScore*sleepWeightREM +
		deepScore*sleepWeightDeep +
		fragScore*sleepWeightFragmentation -
		penalty

	value = health.Clamp(value)
	return health.Computed(value, status(value, 80, 60),
		health.Factor{Name: "duration", Delta: durScore * sleepWeightDuration},
		health.Factor{Name: "efficiency", Delta: effScore * sleepWeightEfficiency},
		health.Factor{Name: "rem", Delta: remScore * sleepWeightREM},
		health.Factor{Name: "deep", Delta: deepScore * sleepWeightDeep},
		health.Factor{Name: "fragmentation", Delta: fragScore * sleepWeightFragmentation},
		health.Factor{Name: "waso_penalty", Delta: -penalty},
	)
}

// basicSleep is the fallback scoring path for days without a structured
// session, weighing duration, efficiency, and wake events only.
func basicSleep(total time.Duration, efficiency float64, wakeEvents int) health.ScoreState {
	wakeScore := 100 - 10*float64(wakeEvents)
	if wakeScore < 0 {
		wakeScore = 0
	}

	value := durationScore(total)*0.5 +
		efficiencyScore(efficiency)*0.35 +
		wakeScore*0.15

	value = health.Clamp(value)
	return health.Computed(value, status(value, 80, 60),
		health.Factor{Name: "basic_fallback", Delta: value},
	)
}

// durationScore is a banded curve peaking at 8.5-9.5 hours.
func durationScore(d time.Duration) float64 {
	switch h := d.Hours(); {
	case h >= 8.5 && h <= 9.5:
		return 100
	case h >= 7.5 && h < 8.5:
		return 90
	case h > 9.5 && h <= 10.5:
		return 90
	case h >= 6.5:
		return 75
	case h > 10.5:
		return 75
	case h >= 5.5:
		return 55
	case h >= 4.5:
		return 40
	default:
		return 20
	}
}

func efficiencyScore(eff float64) float64 {
	switch {
	case eff >= 0.90:
		return 100
	case eff >= 0.85:
		return 85
	case eff >= 0.75:
		return 70
	case eff >= 0.65:
		return 50
	default:
		return 30
	}
}

// bandScore scores a stage percentage against its optimal band, decaying in
// five-point steps away from it.
func bandScore(pct, lo, hi float64) float64 {
	switch {
	case pct >= lo && pct <= hi:
		return 100
	case pct >= lo-5 && pct <= hi+5:
		return 75
	case pct >= lo-10 && pct <= hi+10:
		return 50
	default:
		return 25
	}
}

func fragmentationScore(index float64) float64 {
	score := 100 - index*10
	if score < 0 {
		return 0
	}
	return score
}

func wasoPenalty(waso time.Duration) float64 {
	switch m := waso.Minutes(); {
	case m <= 0:
		return 0
	case m <= 10:
		return 2
	case m <= 20:
		return 5
	case m <= 30:
		return 10
	default:
		return 15
	}
}
