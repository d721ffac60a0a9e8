package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/pulse/internal/health"
)

type PostgresSnapshotStore struct {
	pool *pgxpool.Pool
}

var _ SnapshotStore = (*PostgresSnapshotStore)(nil)

const postgresSnapshotSchema = `
CREATE TABLE IF NOT EXISTS daily_snapshots (
	day DATE PRIMARY KEY,
	id UUID NOT NULL,
	scores JSONB NOT NULL,
	hrv DOUBLE PRECISION,
	rhr DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL
)
`

func OpenPostgres(ctx context.Context, url string) (*PostgresSnapshotStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open snapshot pool: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSnapshotSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap snapshot schema: %w", err)
	}
	return &PostgresSnapshotStore{pool: pool}, nil
}

func (s *PostgresSnapshotStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, snapshot Snapshot) error {
	scores, err := go_json.Marshal(snapshot.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO daily_snapshots (day, id, scores, hrv, rhr, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (day) DO UPDATE SET
			id = EXCLUDED.id,
			scores = EXCLUDED.scores,
			hrv = EXCLUDED.hrv,
			rhr = EXCLUDED.rhr,
			created_at = EXCLUDED.created_at`,
		snapshot.Day(), snapshot.ID, scores, snapshot.HRV, snapshot.RHR, snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresSnapshotStore) Get(ctx context.Context, day time.Time) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT day, id, scores, hrv, rhr, created_at
		 FROM daily_snapshots WHERE day = $1`,
		time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	return scanPostgresSnapshot(row)
}

func (s *PostgresSnapshotStore) Latest(ctx context.Context) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT day, id, scores, hrv, rhr, created_at
		 FROM daily_snapshots ORDER BY day DESC LIMIT 1`)
	return scanPostgresSnapshot(row)
}

func scanPostgresSnapshot(row pgx.Row) (Snapshot, error) {
	var (
		scores   []byte
		snapshot Snapshot
	)
	err := row.Scan(&snapshot.Date, &snapshot.ID, &scores, &snapshot.HRV, &snapshot.RHR, &snapshot.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}

	snapshot.Scores = make(map[health.ScoreCategory]health.ScoreState)
	if err := go_json.Unmarshal(scores, &snapshot.Scores); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal scores: %w", err)
	}
	return snapshot, nil
}
