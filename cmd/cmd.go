// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Directory for downloaded artifacts (default: artifacts.output_dir)",
	}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the dataset file",
		Required: true,
	}
}

// tuiCommand returns the top-level TUI command for the interactive workflow.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive workflow view",
		Flags:   []cli.Flag{configFlag(), outputFlag()},
		Action:  r.TUI,
	}
}

// runCommand uploads, profiles and trains headlessly, then writes every artifact.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the full workflow without the interactive view",
		Flags: []cli.Flag{
			fileFlag(),
			outputFlag(),
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output a JSON summary instead of progress text",
			},
		},
		Action: r.Run,
	}
}

// profileCommand uploads a dataset and prints its profile.
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Upload a dataset and show its preview and statistics",
		Flags: []cli.Flag{
			fileFlag(),
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Profile,
	}
}

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
		},
	}
}
