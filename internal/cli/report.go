package cli

import (
	"fmt"
	"os"
)

type ReportCmd struct {
	Quarters int `help:"Number of fiscal quarters in the running-totals window." default:"0"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	n := c.Quarters
	if n <= 0 {
		n = ctx.Cfg.Report.RunningQuarters
	}

	totals, err := ctx.Report.RunningTotals(ctx.Ctx, n)
	if err != nil {
		return err
	}

	fmt.Printf("%-10s %8s %10s %7s\n", "quarter", "pitched", "published", "links")
	for _, t := range totals {
		fmt.Printf("%-10s %8d %10d %7d\n", t.Quarter.Label(), t.Pitched, t.Published, t.Links)
	}
	return nil
}

type ExportCmd struct {
	File string `arg:"" help:"Destination CSV file." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	rows, err := ctx.Report.Leaderboard(ctx.Ctx, 0)
	if err != nil {
		return err
	}

	f, err := os.Create(c.File)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.File, err)
	}
	defer f.Close()

	if err := ctx.Report.ExportCSV(f, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", len(rows), c.File)
	return nil
}
