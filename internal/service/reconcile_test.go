package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sav-lawnstarter/studies-calendar/internal/match"
)

func TestReconcileRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stories, metrics, brands, matches := newTestDB(t)

	ingest := &IngestService{
		Stories:          stories,
		Metrics:          metrics,
		Brands:           brands,
		LinkCountAliases: []string{"links"},
	}

	planning := strings.Join([]string{
		"Title,Pitch Date",
		"Best Dog Parks in America,2025-03-01",          // exact title hit
		"States With the Most Backyard Pools,2025-04-10", // fuzzy hit
		"Completely Unmatched Idea,2025-05-20",           // date fallback
		"Nothing Matches This One,",                      // none
	}, "\n")
	_, err := ingest.ImportPlanningCSV(ctx, strings.NewReader(planning))
	require.NoError(t, err)

	metricsCSV := strings.Join([]string{
		"Title,Pitch Date,Links",
		"best dog parks in america,2099-01-01,42",
		"Study: States With the Most Backyard Pools Ranked,2025-04-11,17",
		"Totally Different Headline,2025-05-20,5",
	}, "\n")
	_, err = ingest.ImportMetricsCSV(ctx, strings.NewReader(metricsCSV))
	require.NoError(t, err)

	svc := &ReconcileService{Stories: stories, Metrics: metrics, Matches: matches}
	summary, err := svc.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Planning)
	require.Equal(t, 3, summary.Matched)
	require.Equal(t, 1, summary.ByStrategy[match.StrategyExactTitle])
	require.Equal(t, 1, summary.ByStrategy[match.StrategyFuzzyTitle])
	require.Equal(t, 1, summary.ByStrategy[match.StrategyDateFallback])
	require.Equal(t, 1, summary.ByStrategy[match.StrategyNone])

	views, err := svc.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, views, 4)

	byTitle := map[string]MatchView{}
	for _, v := range views {
		byTitle[v.Story.Title] = v
	}

	exact := byTitle["Best Dog Parks in America"]
	require.Equal(t, string(match.StrategyExactTitle), exact.Strategy)
	require.NotNil(t, exact.Metrics)
	require.Equal(t, 42, exact.Metrics.LinkCount)
	require.Equal(t, 1.0, exact.Similarity)

	fuzzy := byTitle["States With the Most Backyard Pools"]
	require.Equal(t, string(match.StrategyFuzzyTitle), fuzzy.Strategy)
	require.NotNil(t, fuzzy.Metrics)
	require.Equal(t, 17, fuzzy.Metrics.LinkCount)

	fallback := byTitle["Completely Unmatched Idea"]
	require.Equal(t, string(match.StrategyDateFallback), fallback.Strategy)
	require.NotNil(t, fallback.Metrics)
	require.Equal(t, 5, fallback.Metrics.LinkCount)

	none := byTitle["Nothing Matches This One"]
	require.Equal(t, string(match.StrategyNone), none.Strategy)
	require.Nil(t, none.Metrics)

	// a second run is a fresh snapshot and becomes the latest
	summary2, err := svc.Run(ctx)
	require.NoError(t, err)
	require.NotEqual(t, summary.RunID, summary2.RunID)
}
