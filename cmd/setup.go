package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration file and checks that it loads.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		return fmt.Errorf("%w: --config must not be empty", shared.ErrMissingArgument)
	}

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("created config does not load: %w", err)
	}
	r.config = config
	r.configPath = configPath

	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Adjust [training] interval_ms and step to change the simulated run\n")
	r.writePlain("2. Run 'vlab run --file dataset.csv' or 'vlab tui'\n")
	return nil
}
