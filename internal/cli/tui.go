package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/placar/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// runTUI takes over the terminal until the user quits or ctx ends. When
// the board came from a config file, edits to that file are applied live.
func runTUI(ctx context.Context, app *App) error {
	p := tea.NewProgram(newAppModel(app),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if app.ConfigPath != "" {
		w, err := config.NewWatcher(app.ConfigPath, app.Reload, func(cfg config.Config) {
			p.Send(configReloadedMsg{cfg: cfg})
		}, app.Logger)
		if err != nil {
			app.Logger.Warn("config reload disabled", zap.Error(err))
		} else {
			w.Start(ctx)
			defer w.Stop()
		}
	}

	defer func() {
		if app.Motivator != nil && app.Motivator.Playing() {
			app.Motivator.Stop()
		}
	}()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
