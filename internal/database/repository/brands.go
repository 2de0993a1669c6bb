package repository

import (
	"context"
	"database/sql"
)

// BrandRepo handles brands.
type BrandRepo struct {
	db *sql.DB
}

func NewBrandRepo(db *sql.DB) *BrandRepo { return &BrandRepo{db: db} }

func (r *BrandRepo) Upsert(ctx context.Context, b Brand) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO brands(id, name) VALUES(?, ?)
	ON CONFLICT(id) DO UPDATE SET name = excluded.name;
	`, b.ID, b.Name)
	return err
}

func (r *BrandRepo) List(ctx context.Context) ([]Brand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM brands ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ByName returns nil when no brand matches.
func (r *BrandRepo) ByName(ctx context.Context, name string) (*Brand, error) {
	var b Brand
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM brands WHERE name = ?`, name).
		Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
