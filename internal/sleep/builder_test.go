package sleep

import (
	"testing"
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// at builds a timestamp on the night before testNow: hour 23 lands on the
// prior calendar day, hours 0-11 on testNow's day.
func at(hour, min int) time.Time {
	t := time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
	if hour >= 20 {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

func sample(cat health.SleepCategory, start, end time.Time) health.IntervalSample {
	return health.IntervalSample{Category: cat, Start: start, End: end}
}

func build(t *testing.T, samples []health.IntervalSample) []Session {
	t.Helper()
	return buildSessionsAt(samples, testNow.Add(-48*time.Hour), testNow, testNow)
}

func TestBuildSessionsMergesAcrossShortGap(t *testing.T) {
	t.Parallel()

	// 23:00-06:30 with a 10 minute awake gap at 02:00 stays one session.
	samples := []health.IntervalSample{
		sample(health.SleepInBed, at(23, 0), at(6, 30)),
		sample(health.SleepAsleepCore, at(23, 10), at(2, 0)),
		sample(health.SleepAwake, at(2, 0), at(2, 10)),
		sample(health.SleepAsleepCore, at(2, 10), at(4, 30)),
		sample(health.SleepAsleepREM, at(4, 30), at(6, 0)),
	}

	sessions := build(t, samples)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	s := sessions[0]
	if !s.Start.Equal(at(23, 0)) || !s.End.Equal(at(6, 30)) {
		t.Errorf("session bounds = [%v, %v], want [%v, %v]", s.Start, s.End, at(23, 0), at(6, 30))
	}
	if want := 7*time.Hour + 30*time.Minute; s.Duration != want {
		t.Errorf("duration = %v, want %v", s.Duration, want)
	}
	if s.WakeEvents != 1 {
		t.Errorf("wake events = %d, want 1", s.WakeEvents)
	}
	if want := 5*time.Hour + 10*time.Minute; s.Stages.Core != want {
		t.Errorf("core = %v, want %v", s.Stages.Core, want)
	}
	if want := 90 * time.Minute; s.Stages.REM != want {
		t.Errorf("rem = %v, want %v", s.Stages.REM, want)
	}
	if s.Source != SourceDetailed {
		t.Errorf("source = %q, want %q", s.Source, SourceDetailed)
	}
	if s.Efficiency < 0 || s.Efficiency > 1 {
		t.Errorf("efficiency = %v, want within [0,1]", s.Efficiency)
	}
}

func TestBuildSessionsSplitsAcrossLongGap(t *testing.T) {
	t.Parallel()

	samples := []health.IntervalSample{
		sample(health.SleepInBed, at(22, 0), at(0, 30)),
		sample(health.SleepAsleepUnspecified, at(22, 10), at(0, 20)),
		// 40 minute gap exceeds the merge tolerance.
		sample(health.SleepInBed, at(1, 10), at(5, 0)),
		sample(health.SleepAsleepUnspecified, at(1, 20), at(4, 50)),
	}

	sessions := build(t, samples)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
}

func TestBuildSessionsNapFilter(t *testing.T) {
	t.Parallel()

	// 60 minutes in bed is a nap, never a session.
	samples := []health.IntervalSample{
		sample(health.SleepInBed, at(2, 0), at(3, 0)),
		sample(health.SleepAsleepUnspecified, at(2, 5), at(3, 0)),
	}

	if sessions := build(t, samples); len(sessions) != 0 {
		t.Fatalf("got %d sessions, want 0", len(sessions))
	}
}

func TestBuildSessionsNapFilterAppliesToBoundedSpan(t *testing.T) {
	t.Parallel()

	// The merged interval spans two hours, but the in-bed window bounding
	// the session is only one. The minimum applies to the bounded span.
	samples := []health.IntervalSample{
		sample(health.SleepInBed, at(0, 0), at(1, 0)),
		sample(health.SleepAsleepCore, at(0, 0), at(2, 0)),
	}

	if sessions := build(t, samples); len(sessions) != 0 {
		t.Fatalf("got %d sessions, want 0", len(sessions))
	}
}

func TestSessionStageTotalMatchesDurationOnlyWhenContiguous(t *testing.T) {
	t.Parallel()

	// A single in-bed sample covers the whole bounded span, so the stage
	// total and the session duration agree.
	contiguous := []health.IntervalSample{
		sample(health.SleepInBed, at(23, 0), at(6, 0)),
		sample(health.SleepAsleepCore, at(23, 0), at(6, 0)),
	}
	sessions := build(t, contiguous)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if s := sessions[0]; s.Stages.TotalInBed() != s.Duration {
		t.Errorf("stage total = %v, duration = %v, want equal for full coverage", s.Stages.TotalInBed(), s.Duration)
	}

	// A 20 minute unsampled hole inside the merged span leaves the stage
	// total short of the bounded duration.
	gapped := []health.IntervalSample{
		sample(health.SleepInBed, at(23, 0), at(1, 0)),
		sample(health.SleepAsleepCore, at(23, 0), at(1, 0)),
		sample(health.SleepInBed, at(1, 20), at(6, 0)),
		sample(health.SleepAsleepCore, at(1, 20), at(6, 0)),
	}
	sessions = build(t, gapped)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	s := sessions[0]
	if want := 7 * time.Hour; s.Duration != want {
		t.Fatalf("duration = %v, want %v", s.Duration, want)
	}
	if want := 6*time.Hour + 40*time.Minute; s.Stages.TotalInBed() != want {
		t.Errorf("stage total = %v, want %v", s.Stages.TotalInBed(), want)
	}
}

func TestBuildSessionsRequiresInBed(t *testing.T) {
	t.Parallel()

	samples := []health.IntervalSample{
		sample(health.SleepAsleepCore, at(23, 0), at(6, 0)),
	}

	if sessions := build(t, samples); len(sessions) != 0 {
		t.Fatalf("got %d sessions, want 0", len(sessions))
	}
}

func TestBuildSessionsDropsInvalidSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample health.IntervalSample
	}{
		{
			name:   "end before start",
			sample: sample(health.SleepInBed, at(6, 0), at(23, 0)),
		},
		{
			name:   "future dated",
			sample: sample(health.SleepInBed, testNow.Add(time.Hour), testNow.Add(9*time.Hour)),
		},
		{
			name:   "before range",
			sample: sample(health.SleepInBed, testNow.Add(-72*time.Hour), testNow.Add(-64*time.Hour)),
		},
		{
			name:   "unknown category",
			sample: health.IntervalSample{Category: "mystery", Start: at(23, 0), End: at(6, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if sessions := build(t, []health.IntervalSample{tt.sample}); len(sessions) != 0 {
				t.Errorf("got %d sessions, want 0", len(sessions))
			}
		})
	}
}

func TestBuildSessionsNeverReturnsShortSessions(t *testing.T) {
	t.Parallel()

	samples := []health.IntervalSample{
		sample(health.SleepInBed, at(23, 0), at(23, 50)),
		sample(health.SleepInBed, at(1, 0), at(2, 10)),
		sample(health.SleepInBed, at(5, 0), at(6, 20)),
	}

	for _, s := range build(t, samples) {
		if s.Duration < minSessionDuration {
			t.Errorf("session duration %v below minimum %v", s.Duration, minSessionDuration)
		}
	}
}

func TestAccumulateStagesApportionsUnspecified(t *testing.T) {
	t.Parallel()

	// 60m core, 20m deep, 20m rem accumulated, then 50m unspecified splits
	// 30/10/10 along the current ratio.
	samples := []health.IntervalSample{
		sample(health.SleepAsleepCore, at(0, 0), at(1, 0)),
		sample(health.SleepAsleepDeep, at(1, 0), at(1, 20)),
		sample(health.SleepAsleepREM, at(1, 20), at(1, 40)),
		sample(health.SleepAsleepUnspecified, at(1, 40), at(2, 30)),
	}

	stages := accumulateStages(samples)
	if want := 90 * time.Minute; stages.Core != want {
		t.Errorf("core = %v, want %v", stages.Core, want)
	}
	if want := 30 * time.Minute; stages.Deep != want {
		t.Errorf("deep = %v, want %v", stages.Deep, want)
	}
	if want := 30 * time.Minute; stages.REM != want {
		t.Errorf("rem = %v, want %v", stages.REM, want)
	}
}

func TestAccumulateStagesUnspecifiedBeforeAnyStage(t *testing.T) {
	t.Parallel()

	samples := []health.IntervalSample{
		sample(health.SleepAsleepUnspecified, at(0, 0), at(1, 0)),
	}

	stages := accumulateStages(samples)
	if want := time.Hour; stages.Core != want {
		t.Errorf("core = %v, want %v", stages.Core, want)
	}
}

func TestCountWakeEventsNoDoubleCount(t *testing.T) {
	t.Parallel()

	samples := []health.IntervalSample{
		sample(health.SleepAsleepCore, at(0, 0), at(1, 0)),
		sample(health.SleepAwake, at(1, 0), at(1, 5)),
		sample(health.SleepAwake, at(1, 5), at(1, 10)),
		sample(health.SleepAsleepCore, at(1, 10), at(2, 0)),
		sample(health.SleepAwake, at(2, 0), at(2, 5)),
	}

	if got := countWakeEvents(samples); got != 2 {
		t.Errorf("wake events = %d, want 2", got)
	}
}

func TestBuildSessionsBasicSource(t *testing.T) {
	t.Parallel()

	samples := []health.IntervalSample{
		sample(health.SleepInBed, at(23, 0), at(6, 0)),
		sample(health.SleepAsleepUnspecified, at(23, 10), at(5, 50)),
	}

	sessions := build(t, samples)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].Source != SourceBasic {
		t.Errorf("source = %q, want %q", sessions[0].Source, SourceBasic)
	}
}

func TestWithMetricsDerivations(t *testing.T) {
	t.Parallel()

	s := Session{
		Duration:   8 * time.Hour,
		WakeEvents: 4,
		Stages:     Stages{Awake: 40 * time.Minute},
	}

	got := withMetrics(s)
	if got.Metrics.WASO != 40*time.Minute {
		t.Errorf("waso = %v, want %v", got.Metrics.WASO, 40*time.Minute)
	}
	if got.Metrics.FragmentationIndex != 0.5 {
		t.Errorf("fragmentation = %v, want 0.5", got.Metrics.FragmentationIndex)
	}
	if got.Metrics.Latency != 4*time.Minute {
		t.Errorf("latency = %v, want %v", got.Metrics.Latency, 4*time.Minute)
	}
	if got.Metrics.Consistency != 1.0 {
		t.Errorf("consistency = %v, want 1.0", got.Metrics.Consistency)
	}
}
