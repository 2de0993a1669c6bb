package testdata

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Brands  *repository.BrandRepo
	Stories *repository.StoryRepo
	Metrics *repository.MetricsRepo
}

var sampleTitles = []string{
	"Best Cities for Dog Parks",
	"States With the Most Backyard Pools",
	"Most Pet-Friendly Rental Markets",
	"Cities With the Greenest Lawns",
	"Where Fire Ants Are Spreading Fastest",
	"Best Cities for Backyard Birdwatching",
	"The Most Mosquito-Infested Cities",
	"Cities Where Gardening Pays Off Most",
}

var sampleStatuses = []string{"idea", "approved", "pitched", "published"}

// Seed creates sample brands, calendar stories and metrics rows so the TUI
// has something to show on a fresh database. Roughly half the stories get a
// matching metrics row; a few metrics rows are deliberately retitled so the
// fuzzy and date strategies have work to do.
func Seed(ctx context.Context, clock dates.Clock, repos Repos) error {
	var brands []repository.Brand
	for _, name := range []string{"LawnStarter", "Lawn Love"} {
		b, err := repos.Brands.ByName(ctx, name)
		if err != nil {
			return err
		}
		if b == nil {
			created := repository.Brand{ID: uuid.NewString(), Name: name}
			if err := repos.Brands.Upsert(ctx, created); err != nil {
				return err
			}
			b = &created
		}
		brands = append(brands, *b)
	}

	today := clock.Today()
	for i, title := range sampleTitles {
		brand := brands[rand.Intn(len(brands))]
		pitch := today.AddMonths(-rand.Intn(10))
		pitchStr := pitch.String()
		status := sampleStatuses[rand.Intn(len(sampleStatuses))]

		story := repository.Story{
			ID:        uuid.NewString(),
			BrandID:   &brand.ID,
			Title:     title,
			PitchDate: &pitchStr,
			Status:    status,
		}
		if status == "published" {
			pub := pitch.AddMonths(1).String()
			story.PublishDate = &pub
		}
		if err := repos.Stories.Insert(ctx, story); err != nil {
			return err
		}

		if i%2 == 1 {
			continue
		}
		metricsTitle := title
		if i%4 == 0 {
			metricsTitle = "Study: " + title + " (Ranked)"
		}
		links := rand.Intn(120)
		m := repository.StoryMetrics{
			ID:        uuid.NewString(),
			Title:     metricsTitle,
			Brand:     &brand.Name,
			PitchDate: &pitchStr,
			LinkCount: links,
			Fields:    fmt.Sprintf(`{"title":%q,"links":"%d"}`, metricsTitle, links),
		}
		if err := repos.Metrics.Insert(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
