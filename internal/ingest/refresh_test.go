package ingest

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/engine"
	"github.com/garrettladley/pulse/internal/health"
	"github.com/garrettladley/pulse/internal/source"
	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/validity"
)

func TestRefreshAll(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	src := source.NewMemorySource()
	src.AddQuantities(health.MetricHRV, health.QuantitySample{Time: now.Add(-2 * time.Hour), Value: 48})
	src.AddQuantities(health.MetricRestingHeartRate, health.QuantitySample{Time: now.Add(-2 * time.Hour), Value: 56})
	for d := 1; d <= 20; d++ {
		src.AddQuantities(health.MetricSteps, health.QuantitySample{
			Time:  now.Add(-time.Duration(d) * 24 * time.Hour),
			Value: 9000,
		})
	}

	night := now.Add(-12 * time.Hour)
	src.AddIntervals(
		health.IntervalSample{Category: health.SleepInBed, Start: night, End: night.Add(8 * time.Hour)},
		health.IntervalSample{Category: health.SleepAsleepCore, Start: night.Add(10 * time.Minute), End: night.Add(8 * time.Hour)},
	)

	eng := engine.New(
		baseline.NewEngine(baseline.NewMemoryCache(), 0),
		storage.NewMemorySnapshotStore(),
		slog.New(slog.DiscardHandler),
		engine.WithDebounce(10*time.Millisecond),
		engine.WithClock(func() time.Time { return now }),
	)

	runCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go eng.Run(runCtx)

	svc := NewService(src, eng)
	svc.now = func() time.Time { return now }

	if err := svc.RefreshAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	states := eng.MetricStates()
	if got := states[health.MetricHRV]; got.Phase != validity.PhaseValid || got.Value != 48 {
		t.Errorf("hrv state = %+v, want valid 48", got)
	}
	if got := states[health.MetricSleepDuration].Phase; got != validity.PhaseValid {
		t.Errorf("sleep duration phase = %q, want valid", got)
	}

	if got := len(eng.Sessions()); got != 1 {
		t.Errorf("sessions = %d, want 1", got)
	}

	scores := eng.Scores()
	if got := scores[health.ScoreRecovery].Phase; got != health.ScorePhaseComputed {
		t.Errorf("recovery phase = %q, want computed", got)
	}
	if got := scores[health.ScoreStress].Phase; got != health.ScorePhaseComputed {
		t.Errorf("stress phase = %q, want computed", got)
	}
}
