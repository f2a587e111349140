package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alexanderramin/placar/internal/config"
	"github.com/alexanderramin/placar/internal/service"
)

// App holds the resolved configuration and the services used by the
// commands and the TUI.
type App struct {
	Config     config.Config
	ConfigPath string
	// Reload rebuilds Config through the same layers as startup.
	Reload config.Loader

	Scoreboard service.ScoreboardService
	History    service.HistoryService
	Photos     service.PhotoService
	Motivator  service.Motivator
	Logger     *zap.Logger

	// Wire builds the services once flags and config are resolved. Left
	// nil when the App is assembled directly.
	Wire func(app *App) error
	// Close releases what Wire acquired.
	Close func()

	// IsInteractive reports whether the TUI can take over the terminal.
	IsInteractive func() bool
}

// SettingsFrom extracts the scoreboard settings from a configuration.
func SettingsFrom(cfg config.Config) service.Settings {
	return service.Settings{
		Goal:  cfg.Goal(),
		Bands: cfg.Bands(),
		Weeks: cfg.Weeks,
		Sound: cfg.Sound,
	}
}

func (a *App) setup(fs *pflag.FlagSet) error {
	cfg, path, err := config.Resolve(fs)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.Config = cfg
	a.ConfigPath = path
	a.Reload = config.FlagLoader(fs)
	if a.Wire != nil {
		if err := a.Wire(a); err != nil {
			return err
		}
	}
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	if a.Scoreboard == nil {
		return errors.New("scoreboard service is not wired")
	}
	return nil
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "placar" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "placar",
		Short: "Weekly goal scoreboard",
		Long: `placar tracks one crucially important goal week by week: type how much
the metric improved each week and the board shows progress against the
ideal line, a stage phrase, and plays a short cue when the stage changes.

Without a terminal it prints the board once and exits.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Flags())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Close != nil {
				app.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(commandContext(cmd), app)
			}
			return writeSummary(cmd.OutOrStdout(), app, 0)
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newSummaryCmd(app),
		newExportCmd(app),
		newCueCmd(app),
		newMotivateCmd(app),
	)

	return root
}
