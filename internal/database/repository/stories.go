package repository

import (
	"context"
	"database/sql"
	"strings"
)

// StoryFilters defines list filters. Pitch-date bounds are inclusive
// YYYY-MM-DD strings; ISO dates sort lexically so plain string comparison
// is correct.
type StoryFilters struct {
	BrandID        string
	Status         string
	PitchedFrom    string
	PitchedThrough string
	Search         string
}

// StoryRepo handles planning-sheet rows.
type StoryRepo struct {
	db *sql.DB
}

func NewStoryRepo(db *sql.DB) *StoryRepo { return &StoryRepo{db: db} }

func (r *StoryRepo) Insert(ctx context.Context, s Story) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO stories(
	 id, brand_id, title, pitch_date, publish_date, status, url, notes, source_hash,
	 created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		s.ID, s.BrandID, s.Title, s.PitchDate, s.PublishDate, s.Status, s.URL, s.Notes, s.SourceHash)
	return err
}

func (r *StoryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE stories SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func (r *StoryRepo) Get(ctx context.Context, id string) (*Story, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, brand_id, title, pitch_date, publish_date, status, url, notes, source_hash, created_at, updated_at
	FROM stories WHERE id = ?`, id)
	s, err := scanStory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoryRepo) List(ctx context.Context, f StoryFilters) ([]Story, error) {
	var where []string
	var args []interface{}

	if f.BrandID != "" {
		where = append(where, "brand_id = ?")
		args = append(args, f.BrandID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.PitchedFrom != "" {
		where = append(where, "pitch_date >= ?")
		args = append(args, f.PitchedFrom)
	}
	if f.PitchedThrough != "" {
		where = append(where, "pitch_date <= ?")
		args = append(args, f.PitchedThrough)
	}
	if f.Search != "" {
		where = append(where, "title LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := `SELECT id, brand_id, title, pitch_date, publish_date, status, url, notes, source_hash, created_at, updated_at FROM stories`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY pitch_date IS NULL, pitch_date, created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountPitched counts stories with a pitch date in [from, through].
func (r *StoryRepo) CountPitched(ctx context.Context, from, through string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stories WHERE pitch_date >= ? AND pitch_date <= ?`,
		from, through).Scan(&n)
	return n, err
}

// CountPublished counts stories with a publish date in [from, through].
func (r *StoryRepo) CountPublished(ctx context.Context, from, through string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stories WHERE publish_date >= ? AND publish_date <= ?`,
		from, through).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStory(row rowScanner) (Story, error) {
	var s Story
	err := row.Scan(&s.ID, &s.BrandID, &s.Title, &s.PitchDate, &s.PublishDate,
		&s.Status, &s.URL, &s.Notes, &s.SourceHash, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
