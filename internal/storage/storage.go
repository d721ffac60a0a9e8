// Package storage persists once-per-day recovery snapshots. Backends share
// the idempotence rule: saving twice for the same calendar day overwrites
// rather than duplicates.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/pulse/internal/health"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the published daily record of scores and their key inputs.
type Snapshot struct {
	ID        uuid.UUID                                `json:"id"`
	Date      time.Time                                `json:"date"`
	Scores    map[health.ScoreCategory]health.ScoreState `json:"scores"`
	HRV       *float64                                 `json:"hrv,omitempty"`
	RHR       *float64                                 `json:"rhr,omitempty"`
	CreatedAt time.Time                                `json:"created_at"`
}

// Day returns the snapshot's calendar day truncated to midnight in the
// snapshot's location.
func (s Snapshot) Day() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
}

type SnapshotStore interface {
	// Save upserts the snapshot keyed by its calendar day.
	Save(ctx context.Context, snapshot Snapshot) error

	// Get returns the snapshot for a calendar day.
	// Returns ErrNotFound when none exists.
	Get(ctx context.Context, day time.Time) (Snapshot, error)

	// Latest returns the most recent snapshot.
	// Returns ErrNotFound when the store is empty.
	Latest(ctx context.Context) (Snapshot, error)

	Close() error
}
