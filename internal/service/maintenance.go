package service

import (
	"context"
	"database/sql"
)

// MaintenanceService provides destructive admin operations.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset clears all imported data and match snapshots. Brands survive so the
// next import maps to stable ids.
func (m *MaintenanceService) Reset(ctx context.Context) error {
	for _, table := range []string{"match_results", "match_runs", "story_metrics", "stories"} {
		if _, err := m.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
