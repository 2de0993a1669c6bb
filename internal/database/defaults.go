package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sav-lawnstarter/studies-calendar/internal/database/repository"
)

// SeedDefaults ensures baseline brands exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	brandRepo := repository.NewBrandRepo(db)
	existing, err := brandRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	defaults := []string{
		"LawnStarter",
		"Lawn Love",
		"Pest Gnome",
	}
	for _, name := range defaults {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("brand:"+name)).String()
		if err := brandRepo.Upsert(ctx, repository.Brand{ID: id, Name: name}); err != nil {
			return err
		}
	}
	return nil
}
