package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/cli/backups"
	"github.com/julianstephens/wellness/internal/cli/dashboard"
	"github.com/julianstephens/wellness/internal/cli/data"
	"github.com/julianstephens/wellness/internal/cli/habits"
	"github.com/julianstephens/wellness/internal/cli/moods"
	"github.com/julianstephens/wellness/internal/cli/settings"
	"github.com/julianstephens/wellness/internal/cli/system"
	"github.com/julianstephens/wellness/internal/cli/water"
	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/errors"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/utils"
	"github.com/julianstephens/wellness/internal/wellness"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite or JSON file path, ':memory:', or a PostgreSQL connection string. PostgreSQL passwords belong in the keyring, WELLNESS_DB_CONNECTION, or .pgpass." env:"WELLNESS_CONFIG" type:"string" default:"${default_config}"`
	Debug    bool   `help:"Enable debug logging."`
	Timezone string `help:"IANA timezone used to decide what 'today' is." env:"WELLNESS_TIMEZONE" default:"Local"`

	Init      system.InitCmd         `cmd:"" help:"Initialize wellness storage."`
	Migrate   system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Dashboard dashboard.DashboardCmd `cmd:"" help:"Show today's summary."`
	Mood      moods.MoodCmd          `cmd:"" help:"Record and review moods."`
	Water     water.WaterCmd         `cmd:"" help:"Track water intake."`
	Habit     habits.HabitCmd        `cmd:"" help:"Manage habits and daily progress."`
	Settings  settings.SettingsCmd   `cmd:"" help:"Show or change hydration settings."`
	Backup    backups.BackupCmd      `cmd:"" help:"Manage backups."`
	Export    data.ExportCmd         `cmd:"" help:"Export all wellness data."`
	Import    data.ImportCmd         `cmd:"" help:"Replace all wellness data from an export."`
	Keyring   system.KeyringCmd      `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Remind    system.RemindCmd       `cmd:"" help:"Send hydration reminders."`
	Notify    system.NotifyCmd       `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

// commands that manage storage themselves or do not need it
var skipLoad = map[string]bool{
	"init":    true,
	"keyring": true,
	"notify":  true,
	"doctor":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track habits, moods, and hydration from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)
	command := strings.Fields(ctx.Command())[0]

	target := cli.ResolveTarget(CLI.Config)
	provider, err := cli.OpenProvider(target)
	if err != nil {
		errors.Fatal(err)
	}
	defer provider.Close()

	configDir, err := cli.ConfigDirFor(target.Config, target.Kind)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Quiet:     command == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Resolved storage", "kind", target.Kind, "source", target.Source)

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := cli.NewContext(provider, target.Kind, configDir, wellness.WithLocation(loc))
	appCtx.Ctx = context.Background()

	if !skipLoad[command] {
		if err := provider.Load(); err != nil {
			errors.Fatal(err)
		}
		if command != "migrate" {
			appCtx.Store.Load(appCtx.Ctx)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		provider.Close()
		errors.Fatal(err)
	}
}
