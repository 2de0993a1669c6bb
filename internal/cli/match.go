package cli

import (
	"fmt"
	"sort"

	"github.com/sav-lawnstarter/studies-calendar/internal/match"
)

type MatchCmd struct{}

func (c *MatchCmd) Run(ctx *Context) error {
	summary, err := ctx.Reconcile.Run(ctx.Ctx)
	if err != nil {
		return err
	}

	fmt.Printf("matched %d of %d planning rows (run %s)\n",
		summary.Matched, summary.Planning, summary.RunID)

	strategies := make([]string, 0, len(summary.ByStrategy))
	for s := range summary.ByStrategy {
		strategies = append(strategies, string(s))
	}
	sort.Strings(strategies)
	for _, s := range strategies {
		fmt.Printf("  %-14s %d\n", s, summary.ByStrategy[match.Strategy(s)])
	}
	return nil
}
