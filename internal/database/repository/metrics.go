package repository

import (
	"context"
	"database/sql"
)

// MetricsRepo handles metrics-sheet rows.
type MetricsRepo struct {
	db *sql.DB
}

func NewMetricsRepo(db *sql.DB) *MetricsRepo { return &MetricsRepo{db: db} }

func (r *MetricsRepo) Insert(ctx context.Context, m StoryMetrics) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO story_metrics(id, title, brand, pitch_date, link_count, fields, source_hash, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`,
		m.ID, m.Title, m.Brand, m.PitchDate, m.LinkCount, m.Fields, m.SourceHash)
	return err
}

func (r *MetricsRepo) Get(ctx context.Context, id string) (*StoryMetrics, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, title, brand, pitch_date, link_count, fields, source_hash, created_at
	FROM story_metrics WHERE id = ?`, id)
	var m StoryMetrics
	err := row.Scan(&m.ID, &m.Title, &m.Brand, &m.PitchDate, &m.LinkCount, &m.Fields, &m.SourceHash, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns metrics rows in insertion order. The matcher's fuzzy pass is
// first-hit-wins over this order, so it must stay stable.
func (r *MetricsRepo) List(ctx context.Context) ([]StoryMetrics, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, brand, pitch_date, link_count, fields, source_hash, created_at
	FROM story_metrics ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoryMetrics
	for rows.Next() {
		var m StoryMetrics
		if err := rows.Scan(&m.ID, &m.Title, &m.Brand, &m.PitchDate, &m.LinkCount, &m.Fields, &m.SourceHash, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SumLinks totals link counts for rows with a pitch date in [from, through].
func (r *MetricsRepo) SumLinks(ctx context.Context, from, through string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(link_count), 0) FROM story_metrics WHERE pitch_date >= ? AND pitch_date <= ?`,
		from, through).Scan(&n)
	return n, err
}
