package data

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/transfer"
)

type ExportCmd struct {
	Format string `short:"f" help:"Output format: json, yaml or cbor (default: from --output extension, else json)."`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := pickFormat(c.Format, c.Output)
	if err != nil {
		return err
	}

	ds := ctx.Store.Data()
	if c.Output == "" {
		return transfer.Export(ctx.Out, ds, format)
	}

	if err := os.MkdirAll(filepath.Dir(c.Output), 0o700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	if err := transfer.Export(f, ds, format); err != nil {
		f.Close()
		return fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d moods, %d hydration days, %d habits and %d habit entries to %s\n",
		len(ds.Moods), len(ds.Hydration), len(ds.Habits), len(ds.HabitEntries), c.Output)
	return nil
}

type ImportCmd struct {
	Path   string `arg:"" help:"File to import." type:"existingfile"`
	Format string `short:"f" help:"Input format: json, jsonc, yaml or cbor (default: from extension)."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format, err := pickFormat(c.Format, c.Path)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	ds, err := transfer.Import(raw, format)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Printf("Importing replaces all current data with %d moods, %d hydration days, %d habits and %d habit entries.\n",
			len(ds.Moods), len(ds.Hydration), len(ds.Habits), len(ds.HabitEntries))
		ok, err := ctx.Confirm("Replace current data?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.ReplaceDataset(ctx.Ctx, ds); err != nil {
		return err
	}
	ctx.Println("✓ Import complete.")
	return nil
}

func pickFormat(flag, path string) (transfer.Format, error) {
	if flag != "" {
		return transfer.ParseFormat(flag)
	}
	if path == "" {
		return transfer.FormatJSON, nil
	}
	return transfer.FormatFromPath(path), nil
}
