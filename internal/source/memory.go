package source

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

// MemorySource is a seedable in-memory sample source, used in tests and the
// demo data path.
type MemorySource struct {
	mu        sync.RWMutex
	intervals []health.IntervalSample
	series    map[health.MetricType][]health.QuantitySample
}

var _ Source = (*MemorySource)(nil)

func NewMemorySource() *MemorySource {
	return &MemorySource{series: make(map[health.MetricType][]health.QuantitySample)}
}

func (s *MemorySource) AddIntervals(samples ...health.IntervalSample) {
	s.mu.Lock()
	s.intervals = append(s.intervals, samples...)
	s.mu.Unlock()
}

func (s *MemorySource) AddQuantities(metric health.MetricType, samples ...health.QuantitySample) {
	s.mu.Lock()
	s.series[metric] = append(s.series[metric], samples...)
	sort.Slice(s.series[metric], func(i, j int) bool {
		return s.series[metric][i].Time.Before(s.series[metric][j].Time)
	})
	s.mu.Unlock()
}

func (s *MemorySource) IntervalSamples(_ context.Context, start, end time.Time) ([]health.IntervalSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []health.IntervalSample
	for _, sample := range s.intervals {
		if sample.Start.Before(end) && sample.End.After(start) {
			out = append(out, sample)
		}
	}
	return out, nil
}

func (s *MemorySource) QuantitySeries(_ context.Context, metric health.MetricType, start, end time.Time) ([]health.QuantitySample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []health.QuantitySample
	for _, p := range s.series[metric] {
		if !p.Time.Before(start) && p.Time.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemorySource) Latest(_ context.Context, metric health.MetricType) (*health.QuantitySample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series := s.series[metric]
	if len(series) == 0 {
		return nil, nil
	}
	latest := series[len(series)-1]
	return &latest, nil
}
