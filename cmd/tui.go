package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/questlog/internal/shared"
	"github.com/desertthunder/questlog/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive kanban board.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.svc == nil {
		return fmt.Errorf("%w: backlog service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.UI.LogPath
	if logPath == "" {
		logPath = "./tmp/questlog-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.ModelOpts{
		Store:    r.store,
		Searcher: r.searcher,
		Logger:   fileLogger,
		Debounce: time.Duration(r.config.Search.DebounceMS) * time.Millisecond,
		PageSize: r.config.Search.PageSize,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
