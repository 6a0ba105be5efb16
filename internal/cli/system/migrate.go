package system

import (
	"fmt"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate only applies to SQL storage (current backend: %s)", ctx.Kind)
	}

	count, err := migrator.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
