package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/desertthunder/visuallab/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	logger      *log.Logger
	output      io.Writer
	engine      *tasks.Engine
	fixedEngine bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string // Path Config was loaded from
	Engine     *tasks.Engine
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
//
// When no Engine is given, one is built from Config and rebuilt whenever a command loads another config file.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	fixed := opts.Engine != nil
	if !fixed {
		opts.Engine = tasks.NewEngineFromConfig(opts.Config, opts.Logger)
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		logger:      opts.Logger,
		output:      opts.Output,
		engine:      opts.Engine,
		fixedEngine: fixed,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, profileCommand, runCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner and engine loggers.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.engine.SetLogger(l)
}

// prepare loads the config named by the --config flag, applies its log level and rebuilds the engine from it.
func (r *Runner) prepare(cmd *cli.Command) error {
	if path := cmd.String("config"); path != "" && path != r.configPath {
		load := shared.LoadConfigOrDefault
		if cmd.IsSet("config") {
			load = shared.LoadConfig
		}
		config, err := load(path)
		if err != nil {
			return err
		}
		r.config = config
		r.configPath = path
		if !r.fixedEngine {
			r.engine = tasks.NewEngineFromConfig(config, r.logger)
		}
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return err
	}
	shared.SetLogLevel(r.logger, level)
	return nil
}

// outputDir returns the --output flag, falling back to the configured artifacts directory.
//
// A path naming an existing non-directory is rejected with [shared.ErrInvalidArgument].
func (r *Runner) outputDir(cmd *cli.Command) (string, error) {
	dir := cmd.String("output")
	if dir == "" {
		dir = r.config.Artifacts.OutputDir
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%w: output %s is not a directory", shared.ErrInvalidArgument, dir)
	}
	return dir, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
