package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexanderramin/placar/internal/audio"
	"github.com/alexanderramin/placar/internal/audio/otodevice"
	"github.com/alexanderramin/placar/internal/cli"
	"github.com/alexanderramin/placar/internal/config"
	"github.com/alexanderramin/placar/internal/db"
	"github.com/alexanderramin/placar/internal/imageref"
	"github.com/alexanderramin/placar/internal/repository"
	"github.com/alexanderramin/placar/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{Wire: wire}

	// Detect an interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// wire builds the services once the configuration is resolved.
func wire(app *cli.App) error {
	logger, err := newLogger(app.Config)
	if err != nil {
		return err
	}

	// Open the session journal
	database, err := db.OpenDB()
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}

	editRepo := repository.NewSQLiteEntryEditRepo(database)
	eventRepo := repository.NewSQLiteStageEventRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Audio devices are created lazily on first playback.
	engine := audio.NewEngine(otodevice.Factory(app.Config.SampleRate), logger)
	observer := service.NewLogUseCaseObserver(logger)

	app.Logger = logger
	app.Scoreboard = service.NewScoreboardService(cli.SettingsFrom(app.Config), engine, uow, logger, observer)
	app.History = service.NewHistoryService(editRepo, eventRepo)
	app.Photos = service.NewPhotoService(imageref.NewSlots(), app.Config.AssetsDir, logger, observer)
	app.Motivator = audio.NewMotivator(engine, app.Config.MotivationTrack, logger)

	app.Close = func() {
		if err := database.Close(); err != nil {
			logger.Warn("closing journal", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return nil
}

// newLogger writes JSON logs to the configured file. Without one, logging
// is off so nothing interferes with the terminal UI.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}
