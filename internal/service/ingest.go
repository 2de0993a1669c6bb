package service

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
	"github.com/sav-lawnstarter/studies-calendar/internal/match"
)

// IngestService imports the two sheets from CSV exports.
type IngestService struct {
	Stories *repository.StoryRepo
	Metrics *repository.MetricsRepo
	Brands  *repository.BrandRepo

	// LinkCountAliases is the ordered list of accepted column spellings for
	// the metrics sheet's link-count field.
	LinkCountAliases []string

	brandCache map[string]repository.Brand
}

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// Header aliases for the planning sheet. The sheet is hand-edited and the
// column names have drifted over the years; resolution is first alias found
// in the header row.
var planningHeaderAliases = map[string][]string{
	"title":        {"title", "story title", "headline", "story"},
	"brand":        {"brand", "client", "site"},
	"pitch_date":   {"pitch date", "pitched", "pitch"},
	"publish_date": {"publish date", "published", "live date"},
	"status":       {"status", "stage"},
	"url":          {"url", "link", "story url"},
	"notes":        {"notes", "comments"},
}

var metricsHeaderAliases = map[string][]string{
	"title":      {"title", "story title", "headline", "story"},
	"brand":      {"brand", "client", "site"},
	"pitch_date": {"pitch date", "pitched", "pitch", "date"},
}

// ImportPlanningCSV ingests a content-calendar export. The first row must be
// a header; only the title column is required. Unparseable dates become NULL
// rather than errors.
func (s *IngestService) ImportPlanningCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	cols := resolveColumns(header, planningHeaderAliases)
	if _, ok := cols["title"]; !ok {
		return res, fmt.Errorf("no title column found in header %v", header)
	}

	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		title := strings.TrimSpace(cell(rec, cols, "title"))
		if title == "" {
			res.Skipped++
			continue
		}

		pitch := canonicalDate(cell(rec, cols, "pitch_date"))
		publish := canonicalDate(cell(rec, cols, "publish_date"))
		status := strings.TrimSpace(cell(rec, cols, "status"))
		if status == "" {
			status = "idea"
		}

		var brandID *string
		if name := strings.TrimSpace(cell(rec, cols, "brand")); name != "" {
			b, err := s.brandForName(ctx, name)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("line %d brand: %w", line, err))
				continue
			}
			brandID = &b.ID
		}

		story := repository.Story{
			ID:          uuid.NewString(),
			BrandID:     brandID,
			Title:       title,
			PitchDate:   pitch,
			PublishDate: publish,
			Status:      status,
			URL:         nullableStr(cell(rec, cols, "url")),
			Notes:       nullableStr(cell(rec, cols, "notes")),
			SourceHash:  hashSource("planning", title, deref(pitch), deref(brandID)),
		}
		if err := s.Stories.Insert(ctx, story); err != nil {
			// skip duplicates on unique constraint
			if strings.Contains(err.Error(), "UNIQUE") {
				res.Skipped++
				continue
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

// ImportMetricsCSV ingests a study-story-data export. Every cell is retained
// in the raw fields map (keyed by lowercased header) so the link-count alias
// shim keeps working for columns this code has never heard of.
func (s *IngestService) ImportMetricsCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	cols := resolveColumns(header, metricsHeaderAliases)
	if _, ok := cols["title"]; !ok {
		return res, fmt.Errorf("no title column found in header %v", header)
	}

	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		title := strings.TrimSpace(cell(rec, cols, "title"))
		if title == "" {
			res.Skipped++
			continue
		}

		fields := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				fields[strings.ToLower(strings.TrimSpace(h))] = rec[i]
			}
		}
		raw, err := json.Marshal(fields)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d fields: %w", line, err))
			continue
		}

		pitch := canonicalDate(cell(rec, cols, "pitch_date"))
		m := repository.StoryMetrics{
			ID:         uuid.NewString(),
			Title:      title,
			Brand:      nullableStr(cell(rec, cols, "brand")),
			PitchDate:  pitch,
			LinkCount:  match.ExtractLinkCount(fields, s.LinkCountAliases),
			Fields:     string(raw),
			SourceHash: hashSource("metrics", title, deref(pitch)),
		}
		if err := s.Metrics.Insert(ctx, m); err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				res.Skipped++
				continue
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

func (s *IngestService) brandForName(ctx context.Context, name string) (repository.Brand, error) {
	if s.brandCache == nil {
		s.brandCache = map[string]repository.Brand{}
	}
	key := strings.ToLower(name)
	if b, ok := s.brandCache[key]; ok {
		return b, nil
	}
	b, err := s.Brands.ByName(ctx, name)
	if err != nil {
		return repository.Brand{}, err
	}
	if b == nil {
		created := repository.Brand{ID: uuid.NewString(), Name: name}
		if err := s.Brands.Upsert(ctx, created); err != nil {
			return repository.Brand{}, err
		}
		b = &created
	}
	s.brandCache[key] = *b
	return *b, nil
}

// resolveColumns maps canonical field names to header indexes, matching
// header cells case-insensitively against each alias list in order.
func resolveColumns(header []string, aliases map[string][]string) map[string]int {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	out := map[string]int{}
	for field, names := range aliases {
		for _, name := range names {
			found := false
			for i, h := range lowered {
				if h == name {
					out[field] = i
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}
	return out
}

func cell(rec []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// canonicalDate normalizes a free-text sheet date to YYYY-MM-DD, or nil when
// it cannot be parsed. Never an error: a bad date is just "no date".
func canonicalDate(raw string) *string {
	d, ok := dates.Parse(raw)
	if !ok {
		return nil
	}
	s := d.String()
	return &s
}

func nullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func hashSource(parts ...string) *string {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	s := fmt.Sprintf("%x", h)
	return &s
}
