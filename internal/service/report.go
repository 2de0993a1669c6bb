package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
	"github.com/sav-lawnstarter/studies-calendar/internal/fiscal"
)

// ReportService computes the quarter views: running totals and the ranked
// link leaderboard.
type ReportService struct {
	Stories   *repository.StoryRepo
	Metrics   *repository.MetricsRepo
	Reconcile *ReconcileService
	Clock     dates.Clock
}

// QuarterTotals is one row of the running-totals view.
type QuarterTotals struct {
	Quarter   fiscal.Quarter
	Pitched   int
	Published int
	Links     int
}

// QuarterStories lists stories whose pitch date falls inside q.
func (s *ReportService) QuarterStories(ctx context.Context, q fiscal.Quarter) ([]repository.Story, error) {
	return s.Stories.List(ctx, repository.StoryFilters{
		PitchedFrom:    q.Start.String(),
		PitchedThrough: q.End.String(),
	})
}

// RunningTotals covers the current quarter and the n-1 before it, newest
// first.
func (s *ReportService) RunningTotals(ctx context.Context, n int) ([]QuarterTotals, error) {
	quarters := fiscal.QuartersBack(s.Clock.Today(), n)
	out := make([]QuarterTotals, 0, len(quarters))
	for _, q := range quarters {
		from, through := q.Start.String(), q.End.String()
		pitched, err := s.Stories.CountPitched(ctx, from, through)
		if err != nil {
			return nil, fmt.Errorf("count pitched %s: %w", q.Label(), err)
		}
		published, err := s.Stories.CountPublished(ctx, from, through)
		if err != nil {
			return nil, fmt.Errorf("count published %s: %w", q.Label(), err)
		}
		links, err := s.Metrics.SumLinks(ctx, from, through)
		if err != nil {
			return nil, fmt.Errorf("sum links %s: %w", q.Label(), err)
		}
		out = append(out, QuarterTotals{Quarter: q, Pitched: pitched, Published: published, Links: links})
	}
	return out, nil
}

// LeaderboardRow is one ranked story in the link report.
type LeaderboardRow struct {
	Title      string
	Brand      string
	PitchDate  string
	Strategy   string
	Links      int
	Similarity float64
}

// Leaderboard ranks the latest reconciliation's stories by link count,
// descending; unmatched stories sort last. limit <= 0 means no limit.
func (s *ReportService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	views, err := s.Reconcile.Latest(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(views))
	for _, v := range views {
		row := LeaderboardRow{
			Title:      v.Story.Title,
			Strategy:   v.Strategy,
			Similarity: v.Similarity,
		}
		if v.Story.PitchDate != nil {
			row.PitchDate = *v.Story.PitchDate
		}
		if v.Metrics != nil {
			row.Links = v.Metrics.LinkCount
			if v.Metrics.Brand != nil {
				row.Brand = *v.Metrics.Brand
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Links > rows[j].Links })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ExportCSV writes the ranked report.
func (s *ReportService) ExportCSV(w io.Writer, rows []LeaderboardRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "brand", "pitch_date", "strategy", "links"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{row.Title, row.Brand, row.PitchDate, row.Strategy, strconv.Itoa(row.Links)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
