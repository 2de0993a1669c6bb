// Package match reconciles story rows across the planning sheet and the
// metrics sheet. The two sources share no stable key, so association is a
// priority-ordered best effort: exact normalized-title match, then fuzzy
// title match, then an exact pitch-date fallback.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
)

// PlanningRecord is a story entry from the planning sheet. Read-only input.
type PlanningRecord struct {
	ID        string
	Title     string
	Brand     string
	PitchDate *dates.CalendarDate
	Status    string
}

// MetricsRecord is a story entry from the metrics sheet. Fields carries the
// raw row for alias-tolerant extraction.
type MetricsRecord struct {
	Title     string
	Brand     string
	PitchDate *dates.CalendarDate
	LinkCount int
	Fields    map[string]string
}

// Strategy names how a pair was associated.
type Strategy string

const (
	StrategyExactTitle   Strategy = "exact-title"
	StrategyFuzzyTitle   Strategy = "fuzzy-title"
	StrategyDateFallback Strategy = "date-fallback"
	StrategyNone         Strategy = "none"
)

// Result is the association for a single planning record. Recomputed on
// every run, never persisted by this package. Similarity is a levenshtein
// ratio of the normalized titles kept for the review UI; it does not affect
// which record was selected.
type Result struct {
	PlanningID string
	Metrics    *MetricsRecord
	Strategy   Strategy
	Similarity float64
}

// FuzzyParams are the fuzzy-title acceptance thresholds. The defaults are
// tuning constants inherited from years of sheet data; they are kept as
// parameters rather than magic numbers.
type FuzzyParams struct {
	// MinSubstringLen is the floor both normalized titles must reach before
	// a containment check is allowed.
	MinSubstringLen int
	// MinWordLen is the shortest word counted in the word-overlap check.
	MinWordLen int
	// MinSharedWords is how many qualifying words must appear in both titles.
	MinSharedWords int
}

// DefaultFuzzyParams returns the historical thresholds.
func DefaultFuzzyParams() FuzzyParams {
	return FuzzyParams{MinSubstringLen: 20, MinWordLen: 4, MinSharedWords: 3}
}

// Matcher runs the priority-ordered association. The zero value uses
// DefaultFuzzyParams.
type Matcher struct {
	Fuzzy FuzzyParams
}

// MatchAll associates each planning record with at most one metrics record,
// one result per planning record in input order. Matches are not exclusive:
// two planning rows with the same title map to the same metrics row, which
// mirrors how the sheets are actually edited. It never fails; a record with
// nothing to match gets StrategyNone.
func (m *Matcher) MatchAll(planning []PlanningRecord, metrics []MetricsRecord) []Result {
	fuzzy := m.Fuzzy
	if fuzzy == (FuzzyParams{}) {
		fuzzy = DefaultFuzzyParams()
	}

	// Index metrics by normalized title and by pitch date up front. On
	// duplicate keys the first occurrence wins; for dates this is the
	// deterministic tie-break the sheet's behavior left unspecified.
	byTitle := make(map[string]*MetricsRecord, len(metrics))
	byDate := make(map[dates.CalendarDate]*MetricsRecord)
	normalized := make([]string, len(metrics))
	for i := range metrics {
		normalized[i] = NormalizeTitle(metrics[i].Title)
		if key := normalized[i]; key != "" {
			if _, ok := byTitle[key]; !ok {
				byTitle[key] = &metrics[i]
			}
		}
		if d := metrics[i].PitchDate; d != nil {
			if _, ok := byDate[*d]; !ok {
				byDate[*d] = &metrics[i]
			}
		}
	}

	results := make([]Result, 0, len(planning))
	for _, p := range planning {
		title := NormalizeTitle(p.Title)

		if title != "" {
			if hit, ok := byTitle[title]; ok {
				results = append(results, Result{
					PlanningID: p.ID,
					Metrics:    hit,
					Strategy:   StrategyExactTitle,
					Similarity: 1,
				})
				continue
			}
		}

		// First acceptable fuzzy candidate wins, scanning metrics in input
		// order. No best-match search: when several rows could match, the
		// earliest one is taken.
		if title != "" {
			matched := false
			for i := range metrics {
				if !fuzzyAccept(title, normalized[i], fuzzy) {
					continue
				}
				results = append(results, Result{
					PlanningID: p.ID,
					Metrics:    &metrics[i],
					Strategy:   StrategyFuzzyTitle,
					Similarity: similarity(title, normalized[i]),
				})
				matched = true
				break
			}
			if matched {
				continue
			}
		}

		if p.PitchDate != nil {
			if hit, ok := byDate[*p.PitchDate]; ok {
				results = append(results, Result{
					PlanningID: p.ID,
					Metrics:    hit,
					Strategy:   StrategyDateFallback,
					Similarity: similarity(title, NormalizeTitle(hit.Title)),
				})
				continue
			}
		}

		results = append(results, Result{PlanningID: p.ID, Strategy: StrategyNone})
	}
	return results
}

func fuzzyAccept(a, b string, p FuzzyParams) bool {
	if a == "" || b == "" {
		return false
	}
	if len(a) >= p.MinSubstringLen && len(b) >= p.MinSubstringLen {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return true
		}
	}
	return sharedWords(a, b, p.MinWordLen) >= p.MinSharedWords
}

func sharedWords(a, b string, minLen int) int {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(a) {
		if len(w) >= minLen {
			set[w] = struct{}{}
		}
	}
	seen := map[string]struct{}{}
	count := 0
	for _, w := range strings.Fields(b) {
		if len(w) < minLen {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := set[w]; ok {
			count++
		}
	}
	return count
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	maxlen := len(a)
	if len(b) > maxlen {
		maxlen = len(b)
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxlen)
}
