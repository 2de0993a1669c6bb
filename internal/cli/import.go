package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sav-lawnstarter/studies-calendar/internal/logging"
	"github.com/sav-lawnstarter/studies-calendar/internal/service"
)

type ImportCmd struct {
	Planning ImportPlanningCmd `cmd:"" help:"Import the planning sheet CSV export."`
	Metrics  ImportMetricsCmd  `cmd:"" help:"Import the metrics sheet CSV export."`
}

type ImportPlanningCmd struct {
	File string `arg:"" help:"CSV file to import." type:"existingfile"`
}

func (c *ImportPlanningCmd) Run(ctx *Context) error {
	return runImport(ctx, c.File, ctx.Ingest.ImportPlanningCSV)
}

type ImportMetricsCmd struct {
	File string `arg:"" help:"CSV file to import." type:"existingfile"`
}

func (c *ImportMetricsCmd) Run(ctx *Context) error {
	return runImport(ctx, c.File, ctx.Ingest.ImportMetricsCSV)
}

func runImport(ctx *Context, path string, do func(context.Context, io.Reader) (service.IngestResult, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := do(ctx.Ctx, f)
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		logging.Warn("import row error", "err", e)
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}
	fmt.Printf("imported %d rows, skipped %d\n", res.Imported, res.Skipped)

	// matching is a derived view; refresh the snapshot after every import
	summary, err := ctx.Reconcile.Run(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("reconcile after import: %w", err)
	}
	fmt.Printf("matched %d of %d planning rows\n", summary.Matched, summary.Planning)
	return nil
}
