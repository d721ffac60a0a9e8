package score

import (
	"testing"
	"time"

	"github.com/garrettladley/pulse/internal/health"
	"github.com/garrettladley/pulse/internal/sleep"
)

func idealSession() sleep.Session {
	// 9h in bed, 22% REM, 17% deep, no awake time.
	asleep := 9 * time.Hour
	rem := time.Duration(0.22 * float64(asleep))
	deep := time.Duration(0.17 * float64(asleep))
	return sleep.Session{
		Duration:   9 * time.Hour,
		Efficiency: 1.0,
		Stages: sleep.Stages{
			Core: asleep - rem - deep,
			Deep: deep,
			REM:  rem,
		},
	}
}

func TestSleepComprehensiveIdeal(t *testing.T) {
	t.Parallel()

	s := idealSession()
	got := Sleep(&s, nil)
	if got.Phase != health.ScorePhaseComputed {
		t.Fatalf("phase = %q, want computed", got.Phase)
	}
	if got.Value != 100 {
		t.Errorf("value = %v, want 100", got.Value)
	}
	if got.Status != health.StatusOptimal {
		t.Errorf("status = %q, want optimal", got.Status)
	}
}

func TestSleepWASOPenalty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		waso time.Duration
		want float64
	}{
		{0, 0},
		{8 * time.Minute, 2},
		{15 * time.Minute, 5},
		{25 * time.Minute, 10},
		{45 * time.Minute, 15},
	}

	for _, tt := range tests {
		if got := wasoPenalty(tt.waso); got != tt.want {
			t.Errorf("wasoPenalty(%v) = %v, want %v", tt.waso, got, tt.want)
		}
	}
}

func TestDurationScoreBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hours float64
		want  float64
	}{
		{9, 100},
		{8.5, 100},
		{9.5, 100},
		{8, 90},
		{10, 90},
		{7, 75},
		{11, 75},
		{6, 55},
		{5, 40},
		{3, 20},
	}

	for _, tt := range tests {
		d := time.Duration(tt.hours * float64(time.Hour))
		if got := durationScore(d); got != tt.want {
			t.Errorf("durationScore(%vh) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestStageBandScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct  float64
		want float64
	}{
		{22, 100},
		{20, 100},
		{25, 100},
		{17, 75},
		{28, 75},
		{12, 50},
		{33, 50},
		{5, 25},
		{45, 25},
	}

	for _, tt := range tests {
		if got := bandScore(tt.pct, 20, 25); got != tt.want {
			t.Errorf("bandScore(%v, 20, 25) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestSleepFallbackWithoutSession(t *testing.T) {
	t.Parallel()

	bed := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	primary := sleep.Session{Start: bed, End: bed.Add(8 * time.Hour), Duration: 8 * time.Hour}
	summary := sleep.DailySummary{
		Date:              time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Primary:           &primary,
		TotalDuration:     8 * time.Hour,
		AverageEfficiency: 0.92,
		TotalWakeEvents:   2,
	}

	got := Sleep(nil, &summary)
	if got.Phase != health.ScorePhaseComputed {
		t.Fatalf("phase = %q, want computed", got.Phase)
	}
	if want := 90*0.5 + 100*0.35 + 80*0.15; got.Value != want {
		t.Errorf("value = %v, want %v", got.Value, want)
	}
}

func TestSleepUnavailableWithoutData(t *testing.T) {
	t.Parallel()

	if got := Sleep(nil, nil); got.Phase != health.ScorePhaseUnavailable {
		t.Errorf("phase = %q, want unavailable", got.Phase)
	}

	empty := sleep.DailySummary{}
	if got := Sleep(nil, &empty); got.Phase != health.ScorePhaseUnavailable {
		t.Errorf("phase with empty summary = %q, want unavailable", got.Phase)
	}
}

func TestSleepIdempotent(t *testing.T) {
	t.Parallel()

	s := idealSession()
	first := Sleep(&s, nil)
	second := Sleep(&s, nil)
	if first.Value != second.Value || first.Status != second.Status {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}
