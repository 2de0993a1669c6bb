package cli

import (
	"context"
	"database/sql"

	"github.com/sav-lawnstarter/studies-calendar/internal/config"
	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
	"github.com/sav-lawnstarter/studies-calendar/internal/service"
)

// Context carries the wired application into command Run methods.
type Context struct {
	Ctx   context.Context
	Cfg   config.Config
	Clock dates.Clock
	DB    *sql.DB

	Brands  *repository.BrandRepo
	Stories *repository.StoryRepo
	Metrics *repository.MetricsRepo
	Matches *repository.MatchRepo

	Ingest      *service.IngestService
	Reconcile   *service.ReconcileService
	Report      *service.ReportService
	Maintenance *service.MaintenanceService
}
