// Package ingest pulls samples from the external source and feeds them to
// the engine. Fetch failures are the source's responsibility; the engine's
// validity states simply decay toward stale as time passes.
package ingest

import (
	"context"
	"time"

	"github.com/garrettladley/pulse/internal/engine"
	"github.com/garrettladley/pulse/internal/source"
)

// IngestService refreshes the engine's view of the sample source.
type IngestService interface {
	// RefreshAll fetches the latest observation and baseline series for
	// every tracked metric plus the sleep interval window, pushing them
	// into the engine as one batch.
	RefreshAll(ctx context.Context) error

	// RefreshSleep rebuilds sessions and the daily summary only.
	RefreshSleep(ctx context.Context) error
}

type Service struct {
	source source.Source
	engine *engine.Engine

	now func() time.Time
}

var _ IngestService = (*Service)(nil)

func NewService(src source.Source, eng *engine.Engine) *Service {
	return &Service{
		source: src,
		engine: eng,
		now:    time.Now,
	}
}
