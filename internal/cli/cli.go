// Package cli implements the gtfs-validator command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	gtfsvalidator "github.com/theoremus-urban-solutions/gtfs-schedule-validator"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/config"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	root       *cobra.Command
	cfg        config.AppConfig
	log        zerolog.Logger
	configPath string
	logLevel   string
	noColor    bool
}

// NewApp creates the CLI application.
func NewApp() *App {
	a := &App{log: zerolog.Nop()}

	a.root = &cobra.Command{
		Use:   "gtfs-validator",
		Short: "Validate GTFS stop times and GTFS-RT trip descriptors",
		Long: `gtfs-validator checks the stop times of a GTFS feed and, when configured,
the trip descriptors of a GTFS-Realtime TripUpdates feed against the schedule.

Times are handled as offsets in seconds from noon of the service day, so
times past midnight such as 25:30:00 are supported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (defaults to config.yml or ./config/config.yml)")
	a.root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level from the config file")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.timeCmd())
	a.root.AddCommand(a.runsCmd())

	return a
}

// setup loads configuration and builds the logger. A missing default config
// file is not an error; an explicit --config must exist.
func (a *App) setup(cmd *cobra.Command) error {
	if a.noColor {
		DisableColor()
	}

	var err error
	if a.configPath != "" {
		err = config.LoadAppConfig(a.configPath)
	} else {
		err = config.LoadAppConfig()
		if errors.Is(err, os.ErrNotExist) {
			config.Config, err = config.Parse([]byte("{}"))
		}
	}
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	a.cfg = config.Config

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	a.log = gtfsvalidator.InitLogging(a.cfg.Log, cmd.ErrOrStderr())
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gtfs-validator %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(errOut)
}

// SetArgs overrides os.Args[1:], for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
