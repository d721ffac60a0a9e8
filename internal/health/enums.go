package health

// MetricType identifies a tracked scalar metric.
type MetricType string

const (
	MetricHRV              MetricType = "hrv"
	MetricRestingHeartRate MetricType = "resting_heart_rate"
	MetricRespiratoryRate  MetricType = "respiratory_rate"
	MetricSpO2             MetricType = "spo2"
	MetricWristTemperature MetricType = "wrist_temperature"
	MetricSleepDuration    MetricType = "sleep_duration"
	MetricSteps            MetricType = "steps"
	MetricActiveEnergy     MetricType = "active_energy"
	MetricWeight           MetricType = "weight"
)

// Tracked lists every metric the validity tracker observes.
func Tracked() []MetricType {
	return []MetricType{
		MetricHRV,
		MetricRestingHeartRate,
		MetricRespiratoryRate,
		MetricSpO2,
		MetricWristTemperature,
		MetricSleepDuration,
		MetricSteps,
		MetricActiveEnergy,
		MetricWeight,
	}
}

// DisplayName returns the human-readable name used in unavailable reasons.
func (m MetricType) DisplayName() string {
	switch m {
	case MetricHRV:
		return "HRV"
	case MetricRestingHeartRate:
		return "RHR"
	case MetricRespiratoryRate:
		return "respiratory rate"
	case MetricSpO2:
		return "SpO2"
	case MetricWristTemperature:
		return "wrist temperature"
	case MetricSleepDuration:
		return "sleep"
	case MetricSteps:
		return "steps"
	case MetricActiveEnergy:
		return "active energy"
	case MetricWeight:
		return "weight"
	default:
		return string(m)
	}
}

// SleepCategory classifies one raw sleep interval sample.
type SleepCategory string

const (
	SleepInBed             SleepCategory = "in_bed"
	SleepAsleepUnspecified SleepCategory = "asleep_unspecified"
	SleepAsleepCore        SleepCategory = "asleep_core"
	SleepAsleepDeep        SleepCategory = "asleep_deep"
	SleepAsleepREM         SleepCategory = "asleep_rem"
	SleepAwake             SleepCategory = "awake"
)

// Valid reports whether c is one of the six recognized categories.
func (c SleepCategory) Valid() bool {
	switch c {
	case SleepInBed, SleepAsleepUnspecified, SleepAsleepCore,
		SleepAsleepDeep, SleepAsleepREM, SleepAwake:
		return true
	default:
		return false
	}
}

// Asleep reports whether c represents an asleep state.
func (c SleepCategory) Asleep() bool {
	switch c {
	case SleepAsleepUnspecified, SleepAsleepCore, SleepAsleepDeep, SleepAsleepREM:
		return true
	default:
		return false
	}
}

// ScoreCategory identifies one of the four daily scores.
type ScoreCategory string

const (
	ScoreRecovery ScoreCategory = "recovery"
	ScoreSleep    ScoreCategory = "sleep"
	ScoreStrain   ScoreCategory = "strain"
	ScoreStress   ScoreCategory = "stress"
)

func ScoreCategories() []ScoreCategory {
	return []ScoreCategory{ScoreRecovery, ScoreSleep, ScoreStrain, ScoreStress}
}

// Status is the qualitative banding of a computed score.
type Status string

const (
	StatusOptimal  Status = "optimal"
	StatusModerate Status = "moderate"
	StatusPoor     Status = "poor"
)
