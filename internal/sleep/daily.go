package sleep

import "time"

// BuildDailySummary folds the sessions overlapping date's calendar day
// [dayStart, dayEnd) into one summary. The primary session is the longest
// overlapping session; on equal durations the first in input order wins.
func BuildDailySummary(date time.Time, sessions []Session) DailySummary {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	summary := DailySummary{Date: dayStart}

	var (
		primary         *Session
		efficiencySum   float64
		overlapping     int
		totalWakeEvents int
	)
	for i := range sessions {
		s := &sessions[i]
		if !s.Start.Before(dayEnd) || !s.End.After(dayStart) {
			continue
		}
		overlapping++
		summary.TotalDuration += s.Duration
		efficiencySum += s.Efficiency
		totalWakeEvents += s.WakeEvents
		if primary == nil || s.Duration > primary.Duration {
			primary = s
		}
	}

	if overlapping == 0 {
		return summary
	}

	summary.AverageEfficiency = efficiencySum / float64(overlapping)
	summary.TotalWakeEvents = totalWakeEvents

	p := *primary
	summary.Primary = &p
	summary.Bedtime = &p.Start
	summary.WakeTime = &p.End
	return summary
}
