package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sav-lawnstarter/studies-calendar/internal/cli"
	"github.com/sav-lawnstarter/studies-calendar/internal/config"
	"github.com/sav-lawnstarter/studies-calendar/internal/database"
	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
	"github.com/sav-lawnstarter/studies-calendar/internal/logging"
	"github.com/sav-lawnstarter/studies-calendar/internal/match"
	"github.com/sav-lawnstarter/studies-calendar/internal/service"
)

var CLI struct {
	Version    kong.VersionFlag
	Migrations string `help:"Migrations directory." default:"internal/database/migrations" hidden:""`

	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Import cli.ImportCmd `cmd:"" help:"Import a spreadsheet CSV export."`
	Match  cli.MatchCmd  `cmd:"" help:"Reconcile planning rows against metrics rows."`
	Report cli.ReportCmd `cmd:"" help:"Print running quarterly totals."`
	Export cli.ExportCmd `cmd:"" help:"Export the link leaderboard to CSV."`
	Seed   cli.SeedCmd   `cmd:"" help:"Seed sample data for a demo database."`
	Reset  cli.ResetCmd  `cmd:"" help:"Delete all imported data and match runs."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("studycal"),
		kong.Description("Editorial calendar and cross-sheet reconciliation for data studies"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fatal("config: %v", err)
	}

	if err := logging.Init(logging.Config{
		Debug:  cfg.UI.Debug,
		LogDir: filepath.Join(filepath.Dir(cfg.Database.Path), "logs"),
	}); err != nil {
		fatal("logging: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		fatal("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, CLI.Migrations); err != nil {
		fatal("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		fatal("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		fatal("seed defaults: %v", err)
	}

	// repositories
	brandRepo := repository.NewBrandRepo(db)
	storyRepo := repository.NewStoryRepo(db)
	metricsRepo := repository.NewMetricsRepo(db)
	matchRepo := repository.NewMatchRepo(db)

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logging.Warn("falling back to local timezone", "tz", cfg.UI.Timezone, "err", err)
		loc = time.Local
	}
	clock := dates.SystemClock{Location: loc}

	matcher := match.Matcher{Fuzzy: match.FuzzyParams{
		MinSubstringLen: cfg.Matcher.MinSubstringLen,
		MinWordLen:      cfg.Matcher.MinWordLen,
		MinSharedWords:  cfg.Matcher.MinSharedWords,
	}}

	// services
	ingest := &service.IngestService{
		Stories:          storyRepo,
		Metrics:          metricsRepo,
		Brands:           brandRepo,
		LinkCountAliases: cfg.Matcher.LinkCountAliases,
	}
	reconcile := &service.ReconcileService{
		Stories:          storyRepo,
		Metrics:          metricsRepo,
		Matches:          matchRepo,
		Matcher:          matcher,
		LinkCountAliases: cfg.Matcher.LinkCountAliases,
	}
	report := &service.ReportService{
		Stories:   storyRepo,
		Metrics:   metricsRepo,
		Reconcile: reconcile,
		Clock:     clock,
	}
	maintenance := &service.MaintenanceService{DB: db}

	appCtx := &cli.Context{
		Ctx:         ctx,
		Cfg:         cfg,
		Clock:       clock,
		DB:          db,
		Brands:      brandRepo,
		Stories:     storyRepo,
		Metrics:     metricsRepo,
		Matches:     matchRepo,
		Ingest:      ingest,
		Reconcile:   reconcile,
		Report:      report,
		Maintenance: maintenance,
	}

	if err := kctx.Run(appCtx); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "studycal: "+format+"\n", args...)
	os.Exit(1)
}
