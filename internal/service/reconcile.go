package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/sav-lawnstarter/studies-calendar/internal/database"
	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
	"github.com/sav-lawnstarter/studies-calendar/internal/logging"
	"github.com/sav-lawnstarter/studies-calendar/internal/match"
)

// ReconcileService runs the cross-sheet matcher over the stored rows and
// persists a snapshot of the result.
type ReconcileService struct {
	Stories *repository.StoryRepo
	Metrics *repository.MetricsRepo
	Matches *repository.MatchRepo

	Matcher          match.Matcher
	LinkCountAliases []string
}

// ReconcileSummary reports one run's outcome.
type ReconcileSummary struct {
	RunID      string
	Planning   int
	Matched    int
	ByStrategy map[match.Strategy]int
}

// Run loads both collections, recomputes the full association from scratch
// (matching is a derived view, never updated incrementally) and stores it.
func (s *ReconcileService) Run(ctx context.Context) (ReconcileSummary, error) {
	stories, err := s.Stories.List(ctx, repository.StoryFilters{})
	if err != nil {
		return ReconcileSummary{}, fmt.Errorf("load stories: %w", err)
	}
	metricRows, err := s.Metrics.List(ctx)
	if err != nil {
		return ReconcileSummary{}, fmt.Errorf("load metrics: %w", err)
	}

	planning := make([]match.PlanningRecord, len(stories))
	for i, st := range stories {
		planning[i] = match.PlanningRecord{
			ID:        st.ID,
			Title:     st.Title,
			PitchDate: parseStored(st.PitchDate),
			Status:    st.Status,
		}
	}

	metrics := make([]match.MetricsRecord, len(metricRows))
	metricsID := make(map[*match.MetricsRecord]string, len(metricRows))
	for i, mr := range metricRows {
		fields := map[string]string{}
		// stored fields are JSON we wrote ourselves; a decode failure just
		// means no alias extraction for that row
		if err := json.Unmarshal([]byte(mr.Fields), &fields); err != nil {
			logging.Warn("undecodable metrics fields", "id", mr.ID, "error", err)
			fields = nil
		}
		brand := ""
		if mr.Brand != nil {
			brand = *mr.Brand
		}
		metrics[i] = match.MetricsRecord{
			Title:     mr.Title,
			Brand:     brand,
			PitchDate: parseStored(mr.PitchDate),
			LinkCount: mr.LinkCount,
			Fields:    fields,
		}
	}
	for i := range metrics {
		metricsID[&metrics[i]] = metricRows[i].ID
	}

	results := s.Matcher.MatchAll(planning, metrics)

	run := repository.MatchRun{
		ID:           uuid.NewString(),
		RunAt:        database.Now(),
		PlanningRows: len(planning),
	}
	rows := make([]repository.MatchResultRow, 0, len(results))
	byStrategy := map[match.Strategy]int{}
	for _, res := range results {
		byStrategy[res.Strategy]++
		row := repository.MatchResultRow{
			RunID:      run.ID,
			StoryID:    res.PlanningID,
			Strategy:   string(res.Strategy),
			Similarity: res.Similarity,
		}
		if res.Metrics != nil {
			id := metricsID[res.Metrics]
			row.MetricsID = &id
			run.MatchedRows++
		}
		rows = append(rows, row)
	}

	if err := s.Matches.SaveRun(ctx, run, rows); err != nil {
		return ReconcileSummary{}, fmt.Errorf("save run: %w", err)
	}
	logging.Info("reconcile run stored", "run", run.ID, "planning", run.PlanningRows, "matched", run.MatchedRows)

	return ReconcileSummary{
		RunID:      run.ID,
		Planning:   run.PlanningRows,
		Matched:    run.MatchedRows,
		ByStrategy: byStrategy,
	}, nil
}

// MatchView joins a stored association with its story and metrics rows for
// display.
type MatchView struct {
	Story      repository.Story
	Metrics    *repository.StoryMetrics
	Strategy   string
	Similarity float64
}

// Latest returns the most recent run's associations, or nil when no run has
// happened yet.
func (s *ReconcileService) Latest(ctx context.Context) ([]MatchView, error) {
	run, err := s.Matches.LatestRun(ctx)
	if err != nil || run == nil {
		return nil, err
	}
	rows, err := s.Matches.ResultsForRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	var out []MatchView
	for _, row := range rows {
		story, err := s.Stories.Get(ctx, row.StoryID)
		if err != nil {
			return nil, err
		}
		if story == nil {
			continue // story deleted since the run; stale snapshot row
		}
		view := MatchView{Story: *story, Strategy: row.Strategy, Similarity: row.Similarity}
		if row.MetricsID != nil {
			view.Metrics, err = s.Metrics.Get(ctx, *row.MetricsID)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func parseStored(s *string) *dates.CalendarDate {
	if s == nil {
		return nil
	}
	return dates.ParsePtr(*s)
}
