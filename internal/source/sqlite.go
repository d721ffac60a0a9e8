package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/garrettladley/pulse/internal/health"
)

// SQLiteSource reads samples from a local health-export database. The
// schema is bootstrapped on open so a fresh path works immediately.
type SQLiteSource struct {
	db *sql.DB
}

var _ Source = (*SQLiteSource)(nil)

const sourceSchema = `
CREATE TABLE IF NOT EXISTS interval_samples (
	category TEXT NOT NULL,
	start_at TIMESTAMP NOT NULL,
	end_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interval_samples_start ON interval_samples(start_at);

CREATE TABLE IF NOT EXISTS quantity_samples (
	metric TEXT NOT NULL,
	at TIMESTAMP NOT NULL,
	value REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quantity_samples_metric_at ON quantity_samples(metric, at);
`

func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sample db: %w", err)
	}
	if _, err := db.Exec(sourceSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap sample schema: %w", err)
	}
	return &SQLiteSource{db: db}, nil
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) IntervalSamples(ctx context.Context, start, end time.Time) ([]health.IntervalSample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, start_at, end_at FROM interval_samples
		 WHERE start_at < ? AND end_at > ?
		 ORDER BY start_at`,
		end, start)
	if err != nil {
		return nil, fmt.Errorf("query interval samples: %w", err)
	}
	defer rows.Close()

	var samples []health.IntervalSample
	for rows.Next() {
		var sample health.IntervalSample
		if err := rows.Scan(&sample.Category, &sample.Start, &sample.End); err != nil {
			return nil, fmt.Errorf("scan interval sample: %w", err)
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

func (s *SQLiteSource) QuantitySeries(ctx context.Context, metric health.MetricType, start, end time.Time) ([]health.QuantitySample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, value FROM quantity_samples
		 WHERE metric = ? AND at >= ? AND at < ?
		 ORDER BY at`,
		string(metric), start, end)
	if err != nil {
		return nil, fmt.Errorf("query quantity series: %w", err)
	}
	defer rows.Close()

	var series []health.QuantitySample
	for rows.Next() {
		var p health.QuantitySample
		if err := rows.Scan(&p.Time, &p.Value); err != nil {
			return nil, fmt.Errorf("scan quantity sample: %w", err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}

func (s *SQLiteSource) Latest(ctx context.Context, metric health.MetricType) (*health.QuantitySample, error) {
	var p health.QuantitySample
	err := s.db.QueryRowContext(ctx,
		`SELECT at, value FROM quantity_samples
		 WHERE metric = ?
		 ORDER BY at DESC LIMIT 1`,
		string(metric)).Scan(&p.Time, &p.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest %s: %w", metric, err)
	}
	return &p, nil
}

// Seed inserts samples, for the demo data path.
func (s *SQLiteSource) Seed(ctx context.Context, intervals []health.IntervalSample, quantities map[health.MetricType][]health.QuantitySample) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, sample := range intervals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO interval_samples (category, start_at, end_at) VALUES (?, ?, ?)`,
			string(sample.Category), sample.Start, sample.End); err != nil {
			return fmt.Errorf("seed interval sample: %w", err)
		}
	}
	for metric, series := range quantities {
		for _, p := range series {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO quantity_samples (metric, at, value) VALUES (?, ?, ?)`,
				string(metric), p.Time, p.Value); err != nil {
				return fmt.Errorf("seed quantity sample: %w", err)
			}
		}
	}
	return tx.Commit()
}
