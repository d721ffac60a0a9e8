package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/pulse/internal/health"
	"github.com/garrettladley/pulse/internal/sleep"
	"github.com/garrettladley/pulse/internal/xslog"
)

// baselineWindow is the trailing history fetched per metric for baselines.
const baselineWindow = 30 * 24 * time.Hour

// sleepWindow covers the previous night plus margin for late risers.
const sleepWindow = 36 * time.Hour

// baselineMetrics are the metrics whose scoring uses a personal baseline.
var baselineMetrics = []health.MetricType{
	health.MetricSteps,
	health.MetricActiveEnergy,
	health.MetricHRV,
	health.MetricRestingHeartRate,
}

func (s *Service) RefreshAll(ctx context.Context) error {
	ctx = xslog.WithAttrs(ctx, slog.String("component", "ingest"))
	logger := xslog.FromContext(ctx)
	logger.InfoContext(ctx, "refreshing all metrics")
	started := s.now()

	if err := s.refreshMetrics(ctx); err != nil {
		return err
	}
	if err := s.RefreshSleep(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "refresh complete", xslog.Duration(s.now().Sub(started)))
	return nil
}

// refreshMetrics fetches independent metrics concurrently; a single metric
// failure is logged and skipped so one flaky series never blocks the rest.
func (s *Service) refreshMetrics(ctx context.Context) error {
	logger := xslog.FromContext(ctx)
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)

	var (
		mu     sync.Mutex
		latest = make(map[health.MetricType]*health.QuantitySample)
		series = make(map[health.MetricType][]health.QuantitySample)
	)

	for _, metric := range health.Tracked() {
		g.Go(func() error {
			sample, err := s.source.Latest(gctx, metric)
			if err != nil {
				logger.WarnContext(gctx, "failed to fetch latest",
					xslog.Metric(metric),
					xslog.Error(err))
				return nil
			}
			mu.Lock()
			latest[metric] = sample
			mu.Unlock()
			return nil
		})
	}

	for _, metric := range baselineMetrics {
		g.Go(func() error {
			points, err := s.source.QuantitySeries(gctx, metric, now.Add(-baselineWindow), now)
			if err != nil {
				logger.WarnContext(gctx, "failed to fetch series",
					xslog.Metric(metric),
					xslog.Error(err))
				return nil
			}
			mu.Lock()
			series[metric] = points
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh metrics: %w", err)
	}

	// Push series before observations so baselines are current when the
	// debounced recomputation fires.
	for metric, points := range series {
		s.engine.ObserveSeries(metric, points)
	}
	for metric, sample := range latest {
		if sample == nil {
			continue
		}
		s.engine.Observe(metric, sample.Value, sample.Time)
	}
	return nil
}

func (s *Service) RefreshSleep(ctx context.Context) error {
	logger := xslog.FromContext(ctx)
	now := s.now()
	start := now.Add(-sleepWindow)

	samples, err := s.source.IntervalSamples(ctx, start, now)
	if err != nil {
		return fmt.Errorf("fetch interval samples: %w", err)
	}
	logger.DebugContext(ctx, "fetched interval samples",
		xslog.Count(len(samples)),
		xslog.Start(start),
		xslog.End(now))

	sessions := sleep.BuildSessions(samples, start, now)
	summary := sleep.BuildDailySummary(now, sessions)

	s.engine.ObserveSleep(sessions, summary)
	if summary.HasData() {
		s.engine.Observe(health.MetricSleepDuration, summary.TotalDuration.Hours(), summary.Primary.End)
	}

	logger.InfoContext(ctx, "refreshed sleep",
		xslog.Count(len(sessions)),
		xslog.Date(summary.Date))
	return nil
}
