package xslog

import (
	"log/slog"
	"time"

	"github.com/garrettladley/pulse/internal/health"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func Metric(metric health.MetricType) slog.Attr {
	const metricKey = "metric"
	return slog.String(metricKey, string(metric))
}

func Category(cat health.ScoreCategory) slog.Attr {
	const categoryKey = "category"
	return slog.String(categoryKey, string(cat))
}

func ScorePhase(phase health.ScorePhase) slog.Attr {
	const phaseKey = "phase"
	return slog.String(phaseKey, string(phase))
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Start(t time.Time) slog.Attr {
	const startKey = "start"
	return slog.Time(startKey, t)
}

func End(t time.Time) slog.Attr {
	const endKey = "end"
	return slog.Time(endKey, t)
}

func Date(t time.Time) slog.Attr {
	const dateKey = "date"
	return slog.String(dateKey, t.Format("2006-01-02"))
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}
