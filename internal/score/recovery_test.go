package score

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/health"
)

func ptr(v float64) *float64 { return &v }

func TestRecoveryFavorableBands(t *testing.T) {
	t.Parallel()

	// HRV 45ms and RHR 55bpm both land in favorable bands.
	got := Recovery(RecoveryInputs{HRV: ptr(45), RHR: ptr(55)})
	if got.Phase != health.ScorePhaseComputed {
		t.Fatalf("phase = %q, want computed", got.Phase)
	}
	if got.Value != 75 {
		t.Errorf("value = %v, want 75", got.Value)
	}
	if got.Status != health.StatusOptimal {
		t.Errorf("status = %q, want optimal", got.Status)
	}
}

func TestRecoveryUnavailableWithoutInputs(t *testing.T) {
	t.Parallel()

	got := Recovery(RecoveryInputs{})
	if got.Phase != health.ScorePhaseUnavailable {
		t.Fatalf("phase = %q, want unavailable", got.Phase)
	}
	if got.Reason == "" {
		t.Error("expected a reason")
	}
}

func TestRecoveryBaselineAdjustments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   RecoveryInputs
		want float64
	}{
		{
			name: "hrv above baseline",
			in: RecoveryInputs{
				HRV:         ptr(45),
				HRVBaseline: &baseline.Stats{Mean: 40},
			},
			want: 50 + 15 + 10,
		},
		{
			name: "hrv below baseline",
			in: RecoveryInputs{
				HRV:         ptr(45),
				HRVBaseline: &baseline.Stats{Mean: 60},
			},
			want: 50 + 15 - 10,
		},
		{
			name: "rhr above baseline",
			in: RecoveryInputs{
				RHR:         ptr(65),
				RHRBaseline: &baseline.Stats{Mean: 58},
			},
			want: 50 + 0 - 8,
		},
		{
			name: "sleep efficiency bonus",
			in: RecoveryInputs{
				HRV:             ptr(45),
				SleepEfficiency: ptr(0.9),
			},
			want: 50 + 15 + 15,
		},
		{
			name: "poor sleep efficiency",
			in: RecoveryInputs{
				HRV:             ptr(45),
				SleepEfficiency: ptr(0.5),
			},
			want: 50 + 15 - 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Recovery(tt.in)
			if got.Value != tt.want {
				t.Errorf("value = %v, want %v", got.Value, tt.want)
			}
		})
	}
}

func TestRecoveryClamped(t *testing.T) {
	t.Parallel()

	got := Recovery(RecoveryInputs{
		HRV:             ptr(90),
		HRVBaseline:     &baseline.Stats{Mean: 60},
		RHR:             ptr(45),
		RHRBaseline:     &baseline.Stats{Mean: 60},
		SleepEfficiency: ptr(0.95),
	})
	if got.Value != 100 {
		t.Errorf("value = %v, want clamp at 100", got.Value)
	}

	got = Recovery(RecoveryInputs{
		HRV:             ptr(15),
		HRVBaseline:     &baseline.Stats{Mean: 60},
		RHR:             ptr(95),
		RHRBaseline:     &baseline.Stats{Mean: 60},
		SleepEfficiency: ptr(0.4),
	})
	if got.Value < 0 {
		t.Errorf("value = %v, want clamp at 0", got.Value)
	}
	if got.Status != health.StatusPoor {
		t.Errorf("status = %q, want poor", got.Status)
	}
}

func TestRecoveryIdempotent(t *testing.T) {
	t.Parallel()

	in := RecoveryInputs{
		HRV:             ptr(55),
		HRVBaseline:     &baseline.Stats{Mean: 50, StdDev: 10},
		RHR:             ptr(58),
		RHRBaseline:     &baseline.Stats{Mean: 60, StdDev: 5},
		SleepEfficiency: ptr(0.88),
	}

	first := Recovery(in)
	second := Recovery(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated computation differs (-first +second):\n%s", diff)
	}
}
