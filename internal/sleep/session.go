package sleep

import (
	"time"

	"github.com/google/uuid"
)

// SourceQuality indicates how much stage detail backed a session.
type SourceQuality string

const (
	// SourceDetailed means at least one core/deep/REM sample was present.
	SourceDetailed SourceQuality = "detailed"
	// SourceBasic means only in-bed/unspecified/awake samples were present.
	SourceBasic SourceQuality = "basic"
)

// Stages holds accumulated time per sleep stage for one session.
type Stages struct {
	Core  time.Duration `json:"core"`
	Deep  time.Duration `json:"deep"`
	REM   time.Duration `json:"rem"`
	Awake time.Duration `json:"awake"`
}

func (s Stages) TotalAsleep() time.Duration {
	return s.Core + s.Deep + s.REM
}

func (s Stages) TotalInBed() time.Duration {
	return s.TotalAsleep() + s.Awake
}

func stagePercent(stage, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(stage) / float64(total) * 100
}

func (s Stages) CorePercent() float64 { return stagePercent(s.Core, s.TotalAsleep()) }
func (s Stages) DeepPercent() float64 { return stagePercent(s.Deep, s.TotalAsleep()) }
func (s Stages) REMPercent() float64  { return stagePercent(s.REM, s.TotalAsleep()) }

// Metrics are derived per-session quality measures, computed in a post-pass
// after stages and wake events are known.
type Metrics struct {
	// WASO approximates wake-after-sleep-onset as the total awake time
	// within the session, not true onset-relative WASO.
	WASO time.Duration `json:"waso"`
	// FragmentationIndex is wake events per hour of session duration.
	FragmentationIndex float64 `json:"fragmentation_index"`
	// Latency is a placeholder heuristic (10% of awake time), not a
	// measured sleep-onset latency.
	Latency time.Duration `json:"latency"`
	// Consistency is fixed at 1.0 absent historical bedtime data.
	Consistency float64 `json:"consistency"`
}

// Session is one reconstructed continuous sleep period bounded by in-bed
// markers. Immutable once built; the metrics post-pass replaces a session
// with an enhanced copy rather than mutating it.
type Session struct {
	ID         uuid.UUID     `json:"id"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Duration   time.Duration `json:"duration"`
	Efficiency float64       `json:"efficiency"`
	Stages     Stages        `json:"stages"`
	WakeEvents int           `json:"wake_events"`
	Source     SourceQuality `json:"source"`
	Metrics    Metrics       `json:"metrics"`
}

// DailySummary folds all sessions overlapping one calendar day.
type DailySummary struct {
	Date              time.Time     `json:"date"`
	Primary           *Session      `json:"primary,omitempty"`
	TotalDuration     time.Duration `json:"total_duration"`
	AverageEfficiency float64       `json:"average_efficiency"`
	TotalWakeEvents   int           `json:"total_wake_events"`
	Bedtime           *time.Time    `json:"bedtime,omitempty"`
	WakeTime          *time.Time    `json:"wake_time,omitempty"`
}

// HasData reports whether the day has a usable primary session.
func (d DailySummary) HasData() bool {
	return d.Primary != nil && d.TotalDuration > 0
}
