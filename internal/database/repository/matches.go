package repository

import (
	"context"
	"database/sql"
)

// MatchRepo persists reconciliation snapshots.
type MatchRepo struct {
	db *sql.DB
}

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

// SaveRun stores a run and its result rows atomically, replacing nothing:
// each run is a fresh snapshot and older runs stay queryable until reset.
func (r *MatchRepo) SaveRun(ctx context.Context, run MatchRun, results []MatchResultRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO match_runs(id, run_at, planning_rows, matched_rows) VALUES(?, ?, ?, ?)`,
		run.ID, run.RunAt, run.PlanningRows, run.MatchedRows); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, res := range results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO match_results(run_id, story_id, metrics_id, strategy, similarity) VALUES(?, ?, ?, ?, ?)`,
			run.ID, res.StoryID, res.MetricsID, res.Strategy, res.Similarity); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LatestRun returns nil when no run has been stored yet.
func (r *MatchRepo) LatestRun(ctx context.Context) (*MatchRun, error) {
	var run MatchRun
	err := r.db.QueryRowContext(ctx, `
	SELECT id, run_at, planning_rows, matched_rows
	FROM match_runs ORDER BY run_at DESC, rowid DESC LIMIT 1`).
		Scan(&run.ID, &run.RunAt, &run.PlanningRows, &run.MatchedRows)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *MatchRepo) ResultsForRun(ctx context.Context, runID string) ([]MatchResultRow, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT run_id, story_id, metrics_id, strategy, similarity
	FROM match_results WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchResultRow
	for rows.Next() {
		var res MatchResultRow
		if err := rows.Scan(&res.RunID, &res.StoryID, &res.MetricsID, &res.Strategy, &res.Similarity); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
