package score

import (
	"testing"

	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/health"
)

func TestStress(t *testing.T) {
	t.Parallel()

	base := &baseline.Stats{Mean: 45, StdDev: 10}

	tests := []struct {
		name       string
		hrv        float64
		wantValue  float64
		wantStatus health.Status
	}{
		{
			name:       "suppressed hrv is high stress",
			hrv:        30,
			wantValue:  75,
			wantStatus: health.StatusPoor,
		},
		{
			name:       "elevated hrv is low stress",
			hrv:        51,
			wantValue:  30,
			wantStatus: health.StatusOptimal,
		},
		{
			name:       "hrv at baseline is neutral",
			hrv:        45,
			wantValue:  50,
			wantStatus: health.StatusModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Stress(StressInputs{HRV: &tt.hrv, HRVBaseline: base})
			if got.Phase != health.ScorePhaseComputed {
				t.Fatalf("phase = %q, want computed", got.Phase)
			}
			if got.Value != tt.wantValue {
				t.Errorf("value = %v, want %v", got.Value, tt.wantValue)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestStressUnavailable(t *testing.T) {
	t.Parallel()

	if got := Stress(StressInputs{}); got.Phase != health.ScorePhaseUnavailable {
		t.Errorf("phase = %q, want unavailable", got.Phase)
	}

	hrv := 45.0
	if got := Stress(StressInputs{HRV: &hrv}); got.Phase != health.ScorePhaseUnavailable {
		t.Errorf("phase without baseline = %q, want unavailable", got.Phase)
	}
}
