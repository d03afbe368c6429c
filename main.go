package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/commands"
	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/config"
	"github.com/sharo-jef/checklist-sub001/internal/core/logging"
	"github.com/sharo-jef/checklist-sub001/internal/core/state"
	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
	"github.com/sharo-jef/checklist-sub001/internal/data/db"
	"github.com/sharo-jef/checklist-sub001/internal/data/stores"
	"github.com/sharo-jef/checklist-sub001/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// openDatabase opens the state database, moving a corrupt file aside and
// starting fresh rather than refusing to launch.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		BusyTimeout:  cfg.Database.BusyTimeoutMS,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, err
	}

	log.Warn().Err(err).Msg("state database is corrupt, moving it aside")
	if rerr := stores.RecoverFromCorruption(cfg.DataDir); rerr != nil {
		return nil, fmt.Errorf("recover database: %w", rerr)
	}

	return db.Open(cfg.DataDir, opts)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		chkApp    = &commands.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "checklist",
		Usage:     "Interactive checklists with persistent completion state",
		UsageText: "checklist [global options] command [command options]",
		Description: `Checklist runs structured checklists from the terminal and remembers which
items you completed across restarts.

Items are checked off one by one, or overridden when a step cannot be
performed as written. Content comes from bundled checklists plus any YAML
files configured under content paths.

Run 'checklist' with no arguments to open the interactive browser.
Run 'checklist ls' to see every checklist and its progress.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("CHECKLIST_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("CHECKLIST_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("CHECKLIST_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("CHECKLIST_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns the terminal, so stdout is
			// not available as a log destination.
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Apply configured theme (validation ensures the name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			database, err = openDatabase(cfg)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			kvStore := stores.NewKVStore(database)
			store := state.NewStore(kvStore)

			// Content problems never keep the app from starting; fall back
			// to the bundled checklists and let doctor report the details.
			var warnings []string
			library, err := checklist.Load(checklist.LoadOptions{
				IncludeBuiltin: !cfg.Content.DisableBuiltin,
				Paths:          cfg.Content.Paths,
			})
			if err != nil {
				log.Warn().Err(err).Msg("failed to load checklist content, using builtin library")
				warnings = append(warnings, fmt.Sprintf("checklist content not loaded: %s (run 'checklist doctor' for details)", err))
				library = checklist.Builtin()
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*chkApp = commands.App{
				Config:      cfg,
				Library:     library,
				DB:          database,
				KV:          kvStore,
				Store:       store,
				Coordinator: state.NewCoordinator(store),
				Warnings:    warnings,
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close database connection
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, chkApp)

	app = commands.NewLsCmd(flags, chkApp).Register(app)
	app = commands.NewShowCmd(flags, chkApp).Register(app)
	app = commands.NewCheckCmd(flags, chkApp).Register(app)
	app = commands.NewResetCmd(flags, chkApp).Register(app)
	app = commands.NewExportCmd(flags, chkApp).Register(app)
	app = commands.NewImportCmd(flags, chkApp).Register(app)
	app = commands.NewDoctorCmd(flags, chkApp).Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'checklist --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
