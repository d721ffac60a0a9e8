package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/garrettladley/pulse/internal/health"
)

type SQLiteSnapshotStore struct {
	db *sql.DB
}

var _ SnapshotStore = (*SQLiteSnapshotStore)(nil)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS daily_snapshots (
	day TEXT PRIMARY KEY,
	id TEXT NOT NULL,
	scores_json TEXT NOT NULL,
	hrv REAL,
	rhr REAL,
	created_at TIMESTAMP NOT NULL
);
`

func OpenSQLite(path string) (*SQLiteSnapshotStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap snapshot schema: %w", err)
	}
	return &SQLiteSnapshotStore{db: db}, nil
}

func (s *SQLiteSnapshotStore) Close() error {
	return s.db.Close()
}

const dayFormat = "2006-01-02"

func (s *SQLiteSnapshotStore) Save(ctx context.Context, snapshot Snapshot) error {
	scores, err := go_json.Marshal(snapshot.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO daily_snapshots (day, id, scores_json, hrv, rhr, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
			id = excluded.id,
			scores_json = excluded.scores_json,
			hrv = excluded.hrv,
			rhr = excluded.rhr,
			created_at = excluded.created_at`,
		snapshot.Day().Format(dayFormat),
		snapshot.ID.String(),
		string(scores),
		snapshot.HRV,
		snapshot.RHR,
		snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Get(ctx context.Context, day time.Time) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT day, id, scores_json, hrv, rhr, created_at
		 FROM daily_snapshots WHERE day = ?`,
		day.Format(dayFormat))
	return scanSnapshot(row)
}

func (s *SQLiteSnapshotStore) Latest(ctx context.Context) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT day, id, scores_json, hrv, rhr, created_at
		 FROM daily_snapshots ORDER BY day DESC LIMIT 1`)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (Snapshot, error) {
	var (
		dayStr     string
		idStr      string
		scoresJSON string
		snapshot   Snapshot
	)
	err := row.Scan(&dayStr, &idStr, &scoresJSON, &snapshot.HRV, &snapshot.RHR, &snapshot.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}

	snapshot.Date, err = time.Parse(dayFormat, dayStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot day: %w", err)
	}
	snapshot.ID, err = uuid.Parse(idStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot id: %w", err)
	}

	snapshot.Scores = make(map[health.ScoreCategory]health.ScoreState)
	if err := go_json.Unmarshal([]byte(scoresJSON), &snapshot.Scores); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal scores: %w", err)
	}
	return snapshot, nil
}
