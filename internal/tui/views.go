package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderDashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Studies Calendar") + "\n\n")
	b.WriteString(fmt.Sprintf("Current quarter: %s (%s to %s)\n\n",
		a.quarter.Label(), a.quarter.Start, a.quarter.End))

	if len(a.totals) > 0 {
		b.WriteString("Running totals:\n")
		b.WriteString(fmt.Sprintf("  %-10s %8s %10s %7s\n", "quarter", "pitched", "published", "links"))
		for _, t := range a.totals {
			b.WriteString(fmt.Sprintf("  %-10s %8d %10d %7d\n",
				t.Quarter.Label(), t.Pitched, t.Published, t.Links))
		}
		b.WriteString("\n")
	}

	if len(a.leaders) > 0 {
		b.WriteString("Top stories by links:\n")
		for i, row := range a.leaders {
			b.WriteString(fmt.Sprintf("  %d. %-48s %5d\n", i+1, truncate(row.Title, 48), row.Links))
		}
		b.WriteString("\n")
	}

	if a.status != "" {
		b.WriteString(a.status + "\n")
	}
	b.WriteString("\n[s]tories [m]atches [i]mport [p]settings [r]un match [e]xport [q]uit")
	return b.String()
}

func (a *App) renderStories() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stories: "+a.quarter.Label()) + "\n\n")

	if len(a.stories) == 0 {
		b.WriteString("  no stories pitched this quarter\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-44s %-12s %-10s %-10s\n", "title", "brand", "pitched", "status"))
		for i, s := range a.stories {
			cursor := "  "
			if i == a.storyCursor {
				cursor = "> "
			}
			pitched := "-"
			if s.PitchDate != nil {
				pitched = *s.PitchDate
			}
			brand := "-"
			if s.BrandID != nil {
				if name := a.brandName[*s.BrandID]; name != "" {
					brand = name
				}
			}
			b.WriteString(fmt.Sprintf("%s%-44s %-12s %-10s %-10s\n",
				cursor, truncate(s.Title, 44), truncate(brand, 12), pitched, s.Status))
		}
	}

	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}
	b.WriteString("\n[/] quarter  [t]oday  [x] cycle status  [d]ashboard [q]uit")
	return b.String()
}

func (a *App) renderMatches() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Matched Results") + "\n\n")

	if len(a.matches) == 0 {
		b.WriteString("  no match run yet, press r to reconcile\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-40s %-14s %-5s %s\n", "planning title", "strategy", "sim", "metrics title"))
		for i, v := range a.matches {
			cursor := "  "
			if i == a.matchCursor {
				cursor = "> "
			}
			metricsTitle := "-"
			sim := "  -"
			if v.Metrics != nil {
				metricsTitle = v.Metrics.Title
				sim = fmt.Sprintf("%.2f", v.Similarity)
			}
			b.WriteString(fmt.Sprintf("%s%-40s %-14s %-5s %s\n",
				cursor, truncate(v.Story.Title, 40), v.Strategy, sim, truncate(metricsTitle, 40)))
		}
	}

	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}
	b.WriteString("\n[r] rerun match  [d]ashboard [q]uit")
	return b.String()
}

func (a *App) renderImport() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import CSV") + "\n\n")
	b.WriteString(fmt.Sprintf("Kind: %s (tab to switch)\n\n", a.importKind))
	b.WriteString("Path: " + a.importPath + "_\n")

	if a.lastImport != nil && len(a.lastImport.Errors) > 0 {
		b.WriteString("\nLast import errors:\n")
		for _, e := range a.lastImport.Errors {
			b.WriteString("  " + e.Error() + "\n")
		}
	}

	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}
	b.WriteString("\nenter to import, esc to cancel")
	return b.String()
}

func (a *App) renderSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")
	b.WriteString("Link count column aliases (in priority order):\n")
	for _, alias := range a.cfg.Matcher.LinkCountAliases {
		b.WriteString("  - " + alias + "\n")
	}
	b.WriteString(fmt.Sprintf("\nFuzzy matching: substring >= %d chars, %d shared words of >= %d chars\n",
		a.cfg.Matcher.MinSubstringLen, a.cfg.Matcher.MinSharedWords, a.cfg.Matcher.MinWordLen))
	b.WriteString(fmt.Sprintf("Running totals window: %d quarters\n", a.cfg.Report.RunningQuarters))
	b.WriteString(fmt.Sprintf("Timezone: %s\n", a.cfg.UI.Timezone))

	if a.confirming {
		b.WriteString("\nReset all stories, metrics, and match runs? [y/n]\n")
	} else {
		b.WriteString("\n[x] reset data  esc to go back\n")
	}
	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
