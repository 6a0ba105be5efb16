package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wellness/internal/backup"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/storage"
	"github.com/julianstephens/wellness/internal/wellness"
)

// AutomaticBackupInterval is the minimum age of the newest backup before
// startup takes another one.
const AutomaticBackupInterval = 24 * time.Hour

type Context struct {
	Provider  storage.Provider
	Store     *wellness.Store
	Kind      storage.Kind
	ConfigDir string
	Out       io.Writer
	Ctx       context.Context

	// Confirm asks a yes/no question before destructive commands
	Confirm func(title string) (bool, error)
}

// NewContext wires a provider to a fresh wellness store. The store is not loaded.
func NewContext(p storage.Provider, kind storage.Kind, configDir string, opts ...wellness.Option) *Context {
	return &Context{
		Provider:  p,
		Store:     wellness.New(p, opts...),
		Kind:      kind,
		ConfigDir: configDir,
		Out:       os.Stdout,
		Ctx:       context.Background(),
		Confirm:   confirmPrompt,
	}
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// Backups returns a backup manager for the configured provider. Restores
// write the dataset through the store.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Provider, c.ConfigDir, backup.WithDatasetWriter(c.Store))
}

// PerformAutomaticBackup takes a backup if none was made in the last day.
// Failures are logged and never interrupt the user.
func (c *Context) PerformAutomaticBackup() {
	path, created, err := c.Backups().CreateIfStale(c.Ctx, AutomaticBackupInterval)
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	if created {
		logger.Info("Automatic backup created", "path", path)
	}
}

// Printf writes to the command output
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command output
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// ConfigDirFor returns the directory that holds backups and logs for a
// storage config. File-backed stores use their own directory.
func ConfigDirFor(config string, kind storage.Kind) (string, error) {
	if kind.FileBacked() {
		return filepath.Dir(ExpandHome(config)), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, "wellness"), nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ProgressBar renders percent (0-100) as a fixed-width text bar
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// FormatValue prints habit values without a trailing .0
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// WatchPath is the file external writers touch, or "" when the backend is
// not a local file.
func (c *Context) WatchPath() string {
	if !c.Kind.FileBacked() {
		return ""
	}
	return c.Provider.GetConfigPath()
}
