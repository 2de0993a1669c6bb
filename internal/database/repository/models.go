package repository

import "time"

// Brand represents a brand row.
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Story represents a planning-sheet row (content calendar entry).
// Dates are day-granular YYYY-MM-DD strings; nil means the sheet cell was
// empty or unparseable.
type Story struct {
	ID          string
	BrandID     *string
	Title       string
	PitchDate   *string
	PublishDate *string
	Status      string
	URL         *string
	Notes       *string
	SourceHash  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StoryMetrics represents a metrics-sheet row. Fields holds the raw row as
// a JSON object so column aliases can be re-resolved later.
type StoryMetrics struct {
	ID         string
	Title      string
	Brand      *string
	PitchDate  *string
	LinkCount  int
	Fields     string
	SourceHash *string
	CreatedAt  time.Time
}

// MatchRun represents one reconciliation pass over the two sheets.
type MatchRun struct {
	ID           string
	RunAt        time.Time
	PlanningRows int
	MatchedRows  int
}

// MatchResultRow persists a single story's association for a run.
type MatchResultRow struct {
	RunID      string
	StoryID    string
	MetricsID  *string
	Strategy   string
	Similarity float64
}
