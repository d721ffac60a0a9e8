package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/health"
	"github.com/garrettladley/pulse/internal/score"
	"github.com/garrettladley/pulse/internal/sleep"
	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/validity"
	"github.com/garrettladley/pulse/internal/xslog"
)

// required lists the metrics whose states gate a category's computation.
// Categories in anyOf compute once at least one listed metric is valid and
// the scorer weighs whichever members are present; the rest need every
// listed metric valid so that an unavailable reason can name the exact
// missing input.
var required = map[health.ScoreCategory][]health.MetricType{
	health.ScoreRecovery: {health.MetricHRV, health.MetricRestingHeartRate},
	health.ScoreSleep:    {health.MetricSleepDuration},
	health.ScoreStrain:   {health.MetricSteps, health.MetricActiveEnergy},
	health.ScoreStress:   {health.MetricHRV},
}

var anyOf = map[health.ScoreCategory]bool{
	health.ScoreStrain: true,
}

// relevant is the superset of metrics whose updates re-trigger a category's
// pipeline; sleep duration enriches recovery without gating it.
var relevant = map[health.ScoreCategory][]health.MetricType{
	health.ScoreRecovery: {health.MetricHRV, health.MetricRestingHeartRate, health.MetricSleepDuration},
	health.ScoreSleep:    {health.MetricSleepDuration},
	health.ScoreStrain:   {health.MetricSteps, health.MetricActiveEnergy},
	health.ScoreStress:   {health.MetricHRV},
}

func relevantTo(cat health.ScoreCategory, metric health.MetricType) bool {
	for _, m := range relevant[cat] {
		if m == metric {
			return true
		}
	}
	return false
}

// recompute runs every dirty pipeline, publishes the resulting states, and
// triggers the daily snapshot when a recovery-relevant metric changed.
func (e *Engine) recompute(ctx context.Context) {
	now := e.now()
	states := e.tracker.States(now)

	var updates []Update

	e.mu.Lock()
	for cat := range e.dirty {
		next := e.compute(ctx, cat, states)
		if prev := e.scores[cat]; !scoreStatesEqual(prev, next) {
			e.scores[cat] = next
			updates = append(updates, Update{Category: cat, State: next})
		}
	}
	e.metricStates = states
	e.pubSessions = e.sessions
	e.pubSummary = e.summary
	e.mu.Unlock()

	e.dirty = make(map[health.ScoreCategory]bool)

	for _, update := range updates {
		e.logger.DebugContext(ctx, "score transition",
			xslog.Category(update.Category),
			xslog.ScorePhase(update.State.Phase))
	}
	e.publish(updates)

	if e.snapshotDue {
		e.snapshotDue = false
		e.maybeSnapshot(ctx, now, states)
	}
}

// compute gates a category on its ready set, mapping gate failures to an
// unavailable state whose reason names the missing or stale inputs.
func (e *Engine) compute(ctx context.Context, cat health.ScoreCategory, states map[health.MetricType]validity.MetricState) health.ScoreState {
	if reason := gateReason(cat, states); reason != "" {
		return health.Unavailable(reason)
	}

	switch cat {
	case health.ScoreRecovery:
		return score.Recovery(e.recoveryInputs(ctx, states))
	case health.ScoreSleep:
		return score.Sleep(e.primarySession(), e.summary)
	case health.ScoreStrain:
		return score.Strain(e.strainInputs(ctx, states))
	case health.ScoreStress:
		return score.Stress(e.stressInputs(ctx, states))
	default:
		return health.Unavailable("unknown score category")
	}
}

func gateReason(cat health.ScoreCategory, states map[health.MetricType]validity.MetricState) string {
	var (
		reasons []string
		valid   int
	)
	for _, metric := range required[cat] {
		switch states[metric].Phase {
		case validity.PhaseValid:
			valid++
		case validity.PhaseMissing:
			reasons = append(reasons, "No "+metric.DisplayName()+" data")
		case validity.PhaseStale:
			reasons = append(reasons, metric.DisplayName()+" data is stale")
		}
	}
	if anyOf[cat] && valid > 0 {
		return ""
	}
	return strings.Join(reasons, "; ")
}

func (e *Engine) recoveryInputs(ctx context.Context, states map[health.MetricType]validity.MetricState) score.RecoveryInputs {
	in := score.RecoveryInputs{
		HRV: validValue(states, health.MetricHRV),
		RHR: validValue(states, health.MetricRestingHeartRate),
	}
	if b, ok := e.resolve(ctx, health.MetricHRV); ok {
		in.HRVBaseline = &b.Stats
	}
	if b, ok := e.resolve(ctx, health.MetricRestingHeartRate); ok {
		in.RHRBaseline = &b.Stats
	}
	if states[health.MetricSleepDuration].Phase == validity.PhaseValid {
		if s := e.primarySession(); s != nil {
			eff := s.Efficiency
			in.SleepEfficiency = &eff
		}
	}
	return in
}

func (e *Engine) strainInputs(ctx context.Context, states map[health.MetricType]validity.MetricState) score.StrainInputs {
	in := score.StrainInputs{
		Steps:  validValue(states, health.MetricSteps),
		Energy: validValue(states, health.MetricActiveEnergy),
	}
	if b, ok := e.resolve(ctx, health.MetricSteps); ok {
		in.StepsBaseline = &b
	}
	if b, ok := e.resolve(ctx, health.MetricActiveEnergy); ok {
		in.EnergyBaseline = &b
	}
	return in
}

func (e *Engine) stressInputs(ctx context.Context, states map[health.MetricType]validity.MetricState) score.StressInputs {
	in := score.StressInputs{HRV: validValue(states, health.MetricHRV)}
	if b, ok := e.resolve(ctx, health.MetricHRV); ok {
		in.HRVBaseline = &b.Stats
	}
	return in
}

func (e *Engine) resolve(ctx context.Context, metric health.MetricType) (baseline.Resolved, bool) {
	return e.baselines.Resolve(ctx, metric, e.series[metric])
}

func (e *Engine) primarySession() *sleep.Session {
	if e.summary == nil {
		return nil
	}
	return e.summary.Primary
}

func validValue(states map[health.MetricType]validity.MetricState, metric health.MetricType) *float64 {
	state, ok := states[metric]
	if !ok || state.Phase != validity.PhaseValid {
		return nil
	}
	v := state.Value
	return &v
}

func scoreStatesEqual(a, b health.ScoreState) bool {
	return a.Phase == b.Phase && a.Value == b.Value && a.Status == b.Status && a.Reason == b.Reason
}

// maybeSnapshot persists the daily snapshot at most once per calendar day,
// and only on recovery-relevant transitions with a computed recovery score.
func (e *Engine) maybeSnapshot(ctx context.Context, now time.Time, states map[health.MetricType]validity.MetricState) {
	if e.snapshots == nil {
		return
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Equal(e.lastSnapshotDay) {
		return
	}

	scores := e.Scores()
	if scores[health.ScoreRecovery].Phase != health.ScorePhaseComputed {
		return
	}

	snapshot := storage.Snapshot{
		ID:        uuid.New(),
		Date:      day,
		Scores:    scores,
		HRV:       validValue(states, health.MetricHRV),
		RHR:       validValue(states, health.MetricRestingHeartRate),
		CreatedAt: now,
	}
	if err := e.snapshots.Save(ctx, snapshot); err != nil {
		e.logger.WarnContext(ctx, "failed to save daily snapshot", xslog.Error(err))
		return
	}
	e.lastSnapshotDay = day
	e.logger.InfoContext(ctx, "saved daily snapshot", xslog.Date(day))
}
