package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing data before initialization."`
	Yes   bool `short:"y" help:"Skip the confirmation prompt for --force."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !c.Yes {
			ok, err := ctx.Confirm(fmt.Sprintf("Delete all wellness data at %s?", ctx.Provider.GetConfigPath()))
			if err != nil {
				return err
			}
			if !ok {
				ctx.Println("Init cancelled.")
				return nil
			}
		}
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		if errors.Is(err, storage.ErrAlreadyInitialized) {
			ctx.Printf("Wellness storage already initialized at: %s\n", ctx.Provider.GetConfigPath())
			return nil
		}
		return err
	}
	ctx.Printf("Initialized wellness storage at: %s\n", ctx.Provider.GetConfigPath())

	if c.Force && !ctx.Kind.FileBacked() {
		if err := clearKeys(ctx); err != nil {
			return err
		}
	}
	ctx.Store.Load(ctx.Ctx)
	return nil
}

// reset removes a file-backed store, including sqlite's sidecar files
func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.Kind.FileBacked() {
		return nil
	}
	path := ctx.Provider.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing data: %w", err)
	}

	if err := ctx.Provider.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing data: %w", err)
		}
	}
	ctx.Printf("Deleted existing data at: %s\n", path)
	return nil
}

func clearKeys(ctx *cli.Context) error {
	keys, err := ctx.Provider.Keys(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing keys: %w", err)
	}
	for _, k := range keys {
		if err := ctx.Provider.RemoveItem(ctx.Ctx, k); err != nil {
			return fmt.Errorf("failed to remove %s: %w", k, err)
		}
	}
	if len(keys) > 0 {
		ctx.Printf("Removed %d existing key(s)\n", len(keys))
	}
	return nil
}
