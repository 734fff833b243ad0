package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config, configPath := loadStartupConfig(defaultConfigPath, logger)
	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "vlab",
		Usage:    "Upload a dataset, profile it, train a model and download the results",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrTrainingCancelled):
			logger.Warn("training cancelled")
			os.Exit(130)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

// loadStartupConfig loads path, or the defaults when it is missing.
//
// The returned path is empty when loading failed so that a later --config naming the same file is loaded again and its error reported.
func loadStartupConfig(path string, logger *log.Logger) (*shared.Config, string) {
	config, err := shared.LoadConfigOrDefault(path)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return shared.DefaultConfig(), ""
	}
	return config, path
}
