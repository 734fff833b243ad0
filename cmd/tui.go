package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/desertthunder/visuallab/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive workflow view.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}
	if r.engine == nil {
		return fmt.Errorf("%w: workflow engine not initialized", shared.ErrServiceUnavailable)
	}
	outputDir, err := r.outputDir(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, ui.ModelOpts{
		OutputDir: outputDir,
		Logger:    r.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
