package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sav-lawnstarter/studies-calendar/internal/config"
	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
	"github.com/sav-lawnstarter/studies-calendar/internal/fiscal"
	"github.com/sav-lawnstarter/studies-calendar/internal/service"
)

// App ties together views.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	cfg      config.Config
	clock    dates.Clock
	state    appState

	quarter    fiscal.Quarter
	stories    []repository.Story
	brandName  map[string]string
	matches    []service.MatchView
	totals     []service.QuarterTotals
	leaders    []service.LeaderboardRow
	status     string
	confirming bool

	storyCursor int
	matchCursor int

	// import flow
	importPath string
	importKind importKind
	lastImport *service.IngestResult
}

type Repos struct {
	Brands  *repository.BrandRepo
	Stories *repository.StoryRepo
	Metrics *repository.MetricsRepo
	Matches *repository.MatchRepo
}

type Services struct {
	Ingest      *service.IngestService
	Reconcile   *service.ReconcileService
	Report      *service.ReportService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewDashboard appState = "dashboard"
	viewStories   appState = "stories"
	viewMatches   appState = "matches"
	viewImport    appState = "import"
	viewSettings  appState = "settings"
)

type importKind string

const (
	importPlanning importKind = "planning"
	importMetrics  importKind = "metrics"
)

func New(ctx context.Context, cfg config.Config, clock dates.Clock, repos Repos, services Services) *App {
	return &App{
		ctx:        ctx,
		repos:      repos,
		services:   services,
		cfg:        cfg,
		clock:      clock,
		state:      viewDashboard,
		quarter:    fiscal.QuarterOf(clock.Today()),
		importKind: importPlanning,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadStories(), a.loadMatches(), a.loadTotals(), a.loadBrands())
}

func (a *App) loadStories() tea.Cmd {
	q := a.quarter
	return func() tea.Msg {
		list, err := a.services.Report.QuarterStories(a.ctx, q)
		if err != nil {
			return errMsg{err}
		}
		return storiesMsg(list)
	}
}

func (a *App) loadBrands() tea.Cmd {
	return func() tea.Msg {
		brands, err := a.repos.Brands.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return brandsMsg(brands)
	}
}

func (a *App) loadMatches() tea.Cmd {
	return func() tea.Msg {
		views, err := a.services.Reconcile.Latest(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return matchesMsg(views)
	}
}

func (a *App) loadTotals() tea.Cmd {
	n := a.cfg.Report.RunningQuarters
	if n <= 0 {
		n = 4
	}
	return func() tea.Msg {
		totals, err := a.services.Report.RunningTotals(a.ctx, n)
		if err != nil {
			return errMsg{err}
		}
		leaders, err := a.services.Report.Leaderboard(a.ctx, 5)
		if err != nil {
			return errMsg{err}
		}
		return totalsMsg{totals: totals, leaders: leaders}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.state == viewImport {
			return a.handleImportKey(m)
		}
		if a.state == viewSettings {
			return a.handleSettingsKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "d":
			a.state = viewDashboard
		case "s":
			a.state = viewStories
		case "m":
			a.state = viewMatches
		case "i":
			a.state = viewImport
			a.status = ""
		case "p":
			a.state = viewSettings
			a.status = ""
		case "[":
			a.setQuarter(fiscal.QuarterOf(fiscal.PrevQuarter(a.quarter.Start)))
			return a, a.loadStories()
		case "]":
			a.setQuarter(fiscal.QuarterOf(fiscal.NextQuarter(a.quarter.Start)))
			return a, a.loadStories()
		case "t":
			a.setQuarter(fiscal.QuarterOf(a.clock.Today()))
			return a, a.loadStories()
		case "up", "k":
			if a.state == viewStories && a.storyCursor > 0 {
				a.storyCursor--
			}
			if a.state == viewMatches && a.matchCursor > 0 {
				a.matchCursor--
			}
		case "down", "j":
			if a.state == viewStories && a.storyCursor < len(a.stories)-1 {
				a.storyCursor++
			}
			if a.state == viewMatches && a.matchCursor < len(a.matches)-1 {
				a.matchCursor++
			}
		case "r":
			if a.state == viewMatches || a.state == viewDashboard {
				a.status = "matching..."
				return a, a.reconcileCmd()
			}
		case "x":
			if a.state == viewStories && len(a.stories) > 0 {
				return a, a.advanceStatusCmd(a.stories[a.storyCursor])
			}
		case "e":
			return a, a.exportCmd()
		}
	case storiesMsg:
		a.stories = []repository.Story(m)
		if a.storyCursor >= len(a.stories) {
			a.storyCursor = 0
		}
	case brandsMsg:
		a.brandName = make(map[string]string, len(m))
		for _, b := range m {
			a.brandName[b.ID] = b.Name
		}
	case matchesMsg:
		a.matches = []service.MatchView(m)
		if a.matchCursor >= len(a.matches) {
			a.matchCursor = 0
		}
	case totalsMsg:
		a.totals = m.totals
		a.leaders = m.leaders
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	case ingestDoneMsg:
		a.lastImport = &m.Result
		summary := fmt.Sprintf("imported %d, skipped %d", m.Result.Imported, m.Result.Skipped)
		if len(m.Result.Errors) > 0 {
			summary += fmt.Sprintf(", errors %d (see import view)", len(m.Result.Errors))
		}
		a.status = summary
		a.state = viewStories
		return a, tea.Sequence(a.reconcileCmd(), a.loadStories(), a.loadTotals(), a.loadBrands())
	case reconcileDoneMsg:
		a.status = fmt.Sprintf("matched %d of %d stories", m.Summary.Matched, m.Summary.Planning)
		return a, tea.Batch(a.loadMatches(), a.loadTotals())
	}
	return a, nil
}

func (a *App) setQuarter(q fiscal.Quarter) {
	a.quarter = q
	a.storyCursor = 0
}

// commands

func (a *App) reconcileCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := a.services.Reconcile.Run(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return reconcileDoneMsg{Summary: summary}
	}
}

var statusCycle = map[string]string{
	"idea":      "approved",
	"approved":  "pitched",
	"pitched":   "published",
	"published": "idea",
}

func (a *App) advanceStatusCmd(s repository.Story) tea.Cmd {
	next, ok := statusCycle[s.Status]
	if !ok {
		next = "idea"
	}
	return tea.Sequence(
		func() tea.Msg {
			if err := a.repos.Stories.UpdateStatus(a.ctx, s.ID, next); err != nil {
				return errMsg{err}
			}
			return statusMsg("status: " + next)
		},
		a.loadStories(),
	)
}

func (a *App) exportCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.services.Report.Leaderboard(a.ctx, 0)
		if err != nil {
			return errMsg{err}
		}
		path := filepath.Join(os.TempDir(), "studycal-report.csv")
		f, err := os.Create(path)
		if err != nil {
			return errMsg{err}
		}
		defer f.Close()
		if err := a.services.Report.ExportCSV(f, rows); err != nil {
			return errMsg{err}
		}
		return statusMsg("report written to " + path)
	}
}

func (a *App) resetCmd() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg {
			if err := a.services.Maintenance.Reset(a.ctx); err != nil {
				return errMsg{err}
			}
			a.storyCursor, a.matchCursor = 0, 0
			return statusMsg("database reset (brands kept)")
		},
		a.loadStories(),
		a.loadMatches(),
		a.loadTotals(),
	)
}

func (a *App) ingestCmd(path string) tea.Cmd {
	abs := path
	if !filepath.IsAbs(path) {
		if p, err := filepath.Abs(path); err == nil {
			abs = p
		}
	}
	kind := a.importKind
	a.status = "importing..."
	return func() tea.Msg {
		f, err := os.Open(abs)
		if err != nil {
			return errMsg{fmt.Errorf("open %s: %w", abs, err)}
		}
		defer f.Close()

		var res service.IngestResult
		if kind == importMetrics {
			res, err = a.services.Ingest.ImportMetricsCSV(a.ctx, f)
		} else {
			res, err = a.services.Ingest.ImportPlanningCSV(a.ctx, f)
		}
		if err != nil {
			return errMsg{err}
		}
		return ingestDoneMsg{Result: res}
	}
}

func (a *App) handleImportKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab":
		if a.importKind == importPlanning {
			a.importKind = importMetrics
		} else {
			a.importKind = importPlanning
		}
		return a, nil
	}
	switch m.Type {
	case tea.KeyEsc:
		a.state = viewDashboard
		a.status = ""
	case tea.KeyEnter:
		path := strings.TrimSpace(a.importPath)
		if path == "" {
			a.status = "enter a CSV path"
			return a, nil
		}
		return a, a.ingestCmd(path)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.importPath) > 0 {
			a.importPath = a.importPath[:len(a.importPath)-1]
		}
	case tea.KeySpace:
		a.importPath += " "
	case tea.KeyRunes:
		a.importPath += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirming {
		switch m.String() {
		case "y", "Y":
			a.confirming = false
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.confirming = false
		}
		return a, nil
	}
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "d":
		a.state = viewDashboard
		a.status = ""
	case "x":
		a.confirming = true
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewStories:
		body = a.renderStories()
	case viewMatches:
		body = a.renderMatches()
	case viewImport:
		body = a.renderImport()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderDashboard()
	}
	return body
}

// messages
type storiesMsg []repository.Story

type brandsMsg []repository.Brand

type matchesMsg []service.MatchView

type totalsMsg struct {
	totals  []service.QuarterTotals
	leaders []service.LeaderboardRow
}

type statusMsg string

type errMsg struct{ error }

type ingestDoneMsg struct {
	Result service.IngestResult
}

type reconcileDoneMsg struct {
	Summary service.ReconcileSummary
}

// styles
var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
