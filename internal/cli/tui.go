package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sav-lawnstarter/studies-calendar/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	app := tui.New(ctx.Ctx, ctx.Cfg, ctx.Clock,
		tui.Repos{
			Brands:  ctx.Brands,
			Stories: ctx.Stories,
			Metrics: ctx.Metrics,
			Matches: ctx.Matches,
		},
		tui.Services{
			Ingest:      ctx.Ingest,
			Reconcile:   ctx.Reconcile,
			Report:      ctx.Report,
			Maintenance: ctx.Maintenance,
		})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
