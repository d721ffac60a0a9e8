// Package engine wires metric observations to debounced score
// recomputation. All state mutation happens on the run loop goroutine;
// published snapshots are guarded copies readable from any goroutine.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/health"
	"github.com/garrettladley/pulse/internal/sleep"
	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/validity"
)

// DefaultDebounce coalesces bursts of upstream updates into one
// recomputation.
const DefaultDebounce = time.Second

// Update is one published score transition.
type Update struct {
	Category health.ScoreCategory
	State    health.ScoreState
}

type observationEvent struct {
	metric health.MetricType
	value  float64
	seenAt time.Time
}

type seriesEvent struct {
	metric health.MetricType
	series []health.QuantitySample
}

type sleepEvent struct {
	sessions []sleep.Session
	summary  sleep.DailySummary
}

type Engine struct {
	baselines *baseline.Engine
	snapshots storage.SnapshotStore
	logger    *slog.Logger
	debounce  time.Duration
	now       func() time.Time

	events chan any

	// Owned by the run loop.
	tracker         *validity.Tracker
	series          map[health.MetricType][]health.QuantitySample
	sessions        []sleep.Session
	summary         *sleep.DailySummary
	dirty           map[health.ScoreCategory]bool
	snapshotDue     bool
	lastSnapshotDay time.Time

	// Published read-only state.
	mu           sync.RWMutex
	scores       map[health.ScoreCategory]health.ScoreState
	metricStates map[health.MetricType]validity.MetricState
	pubSessions  []sleep.Session
	pubSummary   *sleep.DailySummary

	subsMu sync.Mutex
	subs   []chan Update
}

type Option func(*Engine)

func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

// WithClock overrides the engine's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(baselines *baseline.Engine, snapshots storage.SnapshotStore, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		baselines:    baselines,
		snapshots:    snapshots,
		logger:       logger,
		debounce:     DefaultDebounce,
		now:          time.Now,
		events:       make(chan any, 256),
		tracker:      validity.NewTracker(),
		series:       make(map[health.MetricType][]health.QuantitySample),
		dirty:        make(map[health.ScoreCategory]bool),
		scores:       make(map[health.ScoreCategory]health.ScoreState),
		metricStates: make(map[health.MetricType]validity.MetricState),
	}
	for _, cat := range health.ScoreCategories() {
		e.scores[cat] = health.Pending()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Observe records a metric observation and schedules recomputation.
func (e *Engine) Observe(metric health.MetricType, value float64, seenAt time.Time) {
	e.events <- observationEvent{metric: metric, value: value, seenAt: seenAt}
}

// ObserveSeries replaces a metric's backing history used for baselines.
func (e *Engine) ObserveSeries(metric health.MetricType, series []health.QuantitySample) {
	e.events <- seriesEvent{metric: metric, series: series}
}

// ObserveSleep replaces the reconstructed sessions and daily summary.
func (e *Engine) ObserveSleep(sessions []sleep.Session, summary sleep.DailySummary) {
	e.events <- sleepEvent{sessions: sessions, summary: summary}
}

// Subscribe returns a channel of score transitions. Slow subscribers drop
// updates rather than block the run loop.
func (e *Engine) Subscribe() <-chan Update {
	ch := make(chan Update, 16)
	e.subsMu.Lock()
	e.subs = append(e.subs, ch)
	e.subsMu.Unlock()
	return ch
}

// Run drives the engine until ctx is cancelled. All computation is
// synchronous within this loop; the debounce window bounds recomputation to
// roughly once per window regardless of upstream fan-in.
func (e *Engine) Run(ctx context.Context) error {
	timer := time.NewTimer(e.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case ev := <-e.events:
			e.apply(ev)
			if !armed {
				timer.Reset(e.debounce)
				armed = true
			}
		case <-timer.C:
			armed = false
			e.recompute(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (e *Engine) apply(ev any) {
	switch ev := ev.(type) {
	case observationEvent:
		e.tracker.Observe(ev.metric, ev.value, ev.seenAt)
		e.markDirty(ev.metric)
	case seriesEvent:
		e.series[ev.metric] = ev.series
		e.markDirty(ev.metric)
	case sleepEvent:
		e.sessions = ev.sessions
		summary := ev.summary
		e.summary = &summary
		e.dirty[health.ScoreSleep] = true
		e.dirty[health.ScoreRecovery] = true
	}
}

func (e *Engine) markDirty(metric health.MetricType) {
	for _, cat := range health.ScoreCategories() {
		if relevantTo(cat, metric) {
			e.dirty[cat] = true
		}
	}
	if metric == health.MetricHRV || metric == health.MetricRestingHeartRate {
		e.snapshotDue = true
	}
}

// Scores returns the published score per category.
func (e *Engine) Scores() map[health.ScoreCategory]health.ScoreState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[health.ScoreCategory]health.ScoreState, len(e.scores))
	for cat, state := range e.scores {
		out[cat] = state
	}
	return out
}

// MetricStates returns the published validity classification per metric.
func (e *Engine) MetricStates() map[health.MetricType]validity.MetricState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[health.MetricType]validity.MetricState, len(e.metricStates))
	for m, state := range e.metricStates {
		out[m] = state
	}
	return out
}

// Sessions returns the published sleep sessions.
func (e *Engine) Sessions() []sleep.Session {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]sleep.Session, len(e.pubSessions))
	copy(out, e.pubSessions)
	return out
}

// DailySummary returns the published daily summary, or nil before the first
// sleep observation.
func (e *Engine) DailySummary() *sleep.DailySummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.pubSummary == nil {
		return nil
	}
	summary := *e.pubSummary
	return &summary
}

func (e *Engine) publish(updates []Update) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	for _, update := range updates {
		for _, ch := range e.subs {
			select {
			case ch <- update:
			default:
			}
		}
	}
}
