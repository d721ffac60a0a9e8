package health

// ScorePhase is the lifecycle phase of a daily score.
type ScorePhase string

const (
	ScorePhasePending     ScorePhase = "PENDING"
	ScorePhaseUnavailable ScorePhase = "UNAVAILABLE"
	ScorePhaseComputed    ScorePhase = "COMPUTED"
)

// Factor records one contribution to a computed score, so a score is
// explainable after the fact.
type Factor struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// ScoreState is the published state of one score category. Zero is a valid
// computed score; absence of data is always represented by the unavailable
// phase with a reason, never by a zero value.
type ScoreState struct {
	Phase   ScorePhase `json:"phase"`
	Value   float64    `json:"value"`
	Status  Status     `json:"status"`
	Reason  string     `json:"reason,omitempty"`
	Factors []Factor   `json:"factors,omitempty"`
}

func Pending() ScoreState {
	return ScoreState{Phase: ScorePhasePending}
}

func Unavailable(reason string) ScoreState {
	return ScoreState{Phase: ScorePhaseUnavailable, Reason: reason}
}

func Computed(value float64, status Status, factors ...Factor) ScoreState {
	return ScoreState{Phase: ScorePhaseComputed, Value: value, Status: status, Factors: factors}
}

// Clamp bounds v to [0,100].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
