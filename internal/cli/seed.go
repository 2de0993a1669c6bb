package cli

import (
	"fmt"

	"github.com/sav-lawnstarter/studies-calendar/internal/testdata"
)

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *Context) error {
	err := testdata.Seed(ctx.Ctx, ctx.Clock, testdata.Repos{
		Brands:  ctx.Brands,
		Stories: ctx.Stories,
		Metrics: ctx.Metrics,
	})
	if err != nil {
		return err
	}
	fmt.Println("sample data seeded")
	return nil
}

type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt." short:"f"`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Print("This deletes all stories, metrics, and match runs. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("aborted")
			return nil
		}
	}
	if err := ctx.Maintenance.Reset(ctx.Ctx); err != nil {
		return err
	}
	fmt.Println("database reset (brands kept)")
	return nil
}
