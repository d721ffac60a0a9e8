package sleep

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/pulse/internal/health"
)

const (
	// mergeGapTolerance is the maximal gap between consecutive samples that
	// still belong to the same interval.
	mergeGapTolerance = 30 * time.Minute
	// minSessionDuration filters naps out of session reconstruction.
	minSessionDuration = 90 * time.Minute

	latencyAwakeFraction = 0.10
)

// BuildSessions reconstructs sleep sessions from raw interval samples within
// [rangeStart, rangeEnd). Malformed, future-dated, and out-of-range samples
// are dropped rather than surfaced as errors; the result is empty, never nil
// on failure.
func BuildSessions(samples []health.IntervalSample, rangeStart, rangeEnd time.Time) []Session {
	return buildSessionsAt(samples, rangeStart, rangeEnd, time.Now())
}

func buildSessionsAt(samples []health.IntervalSample, rangeStart, rangeEnd time.Time, now time.Time) []Session {
	valid := filterSamples(samples, rangeStart, rangeEnd, now)
	if len(valid) == 0 {
		return nil
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	var sessions []Session
	for _, interval := range mergeIntervals(valid) {
		if interval.end.Sub(interval.start) < minSessionDuration {
			continue
		}
		if session, ok := buildSession(interval.samples); ok {
			sessions = append(sessions, session)
		}
	}
	return sessions
}

func filterSamples(samples []health.IntervalSample, rangeStart, rangeEnd, now time.Time) []health.IntervalSample {
	valid := make([]health.IntervalSample, 0, len(samples))
	for _, s := range samples {
		if !s.Category.Valid() {
			continue
		}
		if !s.End.After(s.Start) {
			continue
		}
		if s.End.After(now) {
			continue
		}
		if s.Start.Before(rangeStart) || !s.Start.Before(rangeEnd) {
			continue
		}
		valid = append(valid, s)
	}
	return valid
}

type interval struct {
	start, end time.Time
	samples    []health.IntervalSample
}

// mergeIntervals groups sorted samples into contiguous intervals: a sample
// extends the current interval when its start is within the gap tolerance of
// the interval's end. The interval end is the max of all contained ends.
func mergeIntervals(sorted []health.IntervalSample) []interval {
	var intervals []interval
	for _, s := range sorted {
		if len(intervals) > 0 {
			cur := &intervals[len(intervals)-1]
			if !s.Start.After(cur.end.Add(mergeGapTolerance)) {
				cur.samples = append(cur.samples, s)
				if s.End.After(cur.end) {
					cur.end = s.End
				}
				continue
			}
		}
		intervals = append(intervals, interval{
			start:   s.Start,
			end:     s.End,
			samples: []health.IntervalSample{s},
		})
	}
	return intervals
}

// buildSession derives one session from the samples of a surviving interval.
// An interval with no in-bed sample produces no session.
func buildSession(samples []health.IntervalSample) (Session, bool) {
	var bedStart, bedEnd time.Time
	for _, s := range samples {
		if s.Category != health.SleepInBed {
			continue
		}
		if bedStart.IsZero() || s.Start.Before(bedStart) {
			bedStart = s.Start
		}
		if s.End.After(bedEnd) {
			bedEnd = s.End
		}
	}
	if bedStart.IsZero() || !bedEnd.After(bedStart) {
		return Session{}, false
	}
	// The in-bed window can be shorter than the merged interval that
	// survived the nap filter; re-check the minimum on the bounded span.
	if bedEnd.Sub(bedStart) < minSessionDuration {
		return Session{}, false
	}

	session := Session{
		ID:         uuid.New(),
		Start:      bedStart,
		End:        bedEnd,
		Duration:   bedEnd.Sub(bedStart),
		Stages:     accumulateStages(samples),
		WakeEvents: countWakeEvents(samples),
		Source:     sourceQuality(samples),
	}
	if inBed := session.Stages.TotalInBed(); inBed > 0 {
		session.Efficiency = float64(session.Stages.TotalAsleep()) / float64(inBed)
	}
	return withMetrics(session), true
}

func sourceQuality(samples []health.IntervalSample) SourceQuality {
	for _, s := range samples {
		switch s.Category {
		case health.SleepAsleepCore, health.SleepAsleepDeep, health.SleepAsleepREM:
			return SourceDetailed
		}
	}
	return SourceBasic
}

// withMetrics returns an enhanced copy of the session carrying derived
// quality metrics.
func withMetrics(s Session) Session {
	s.Metrics = Metrics{
		WASO:               s.Stages.Awake,
		FragmentationIndex: fragmentationIndex(s.WakeEvents, s.Duration),
		Latency:            time.Duration(latencyAwakeFraction * float64(s.Stages.Awake)),
		Consistency:        1.0,
	}
	return s
}

func fragmentationIndex(wakeEvents int, duration time.Duration) float64 {
	hours := duration.Hours()
	if hours <= 0 {
		return 0
	}
	return float64(wakeEvents) / hours
}
