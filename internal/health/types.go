package health

import "time"

// IntervalSample is a raw category-over-time-range observation supplied by
// the sample source, e.g. one sleep-stage segment.
type IntervalSample struct {
	Category SleepCategory `json:"category"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
}

// Duration returns the span of the sample. Negative spans are possible for
// malformed input and are rejected by consumers.
func (s IntervalSample) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// QuantitySample is a raw point observation of a scalar metric.
type QuantitySample struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}
