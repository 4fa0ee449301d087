package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS track_exports (
	id         TEXT PRIMARY KEY,
	track      TEXT NOT NULL,
	path       TEXT NOT NULL DEFAULT '',
	tracks     INTEGER NOT NULL,
	hotspots   INTEGER NOT NULL,
	skipped    INTEGER NOT NULL,
	exported_by TEXT NOT NULL DEFAULT '',
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
ALTER TABLE track_exports ADD COLUMN IF NOT EXISTS exported_by TEXT NOT NULL DEFAULT '';
CREATE INDEX IF NOT EXISTS track_exports_track_idx ON track_exports (track, created_at DESC);
`

// PGStore keeps records in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Migrate creates the history table if it does not exist.
func (s *PGStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}
	return nil
}

func (s *PGStore) Save(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO track_exports (id, track, path, tracks, hotspots, skipped, exported_by, document, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.Track, rec.Path, rec.Tracks, rec.Hotspots, rec.Skipped, rec.ExportedBy, []byte(rec.Document), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, track, path, tracks, hotspots, skipped, exported_by, document, created_at
		 FROM track_exports WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get export: %w", err)
	}
	return rec, nil
}

func (s *PGStore) ListByTrack(ctx context.Context, track string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, track, path, tracks, hotspots, skipped, exported_by, document, created_at
		 FROM track_exports WHERE track = $1 ORDER BY created_at DESC LIMIT $2`, track, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var doc []byte
	if err := row.Scan(&rec.ID, &rec.Track, &rec.Path, &rec.Tracks, &rec.Hotspots, &rec.Skipped, &rec.ExportedBy, &doc, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Document = doc
	return &rec, nil
}
