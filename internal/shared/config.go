package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Upload    UploadConfig    `toml:"upload"`
	Training  TrainingConfig  `toml:"training"`
	Artifacts ArtifactsConfig `toml:"artifacts"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UploadConfig contains dataset upload validation settings.
type UploadConfig struct {
	AllowedExtensions []string `toml:"allowed_extensions"`
	StrictCSV         bool     `toml:"strict_csv"`
	MaxSizeMB         int      `toml:"max_size_mb"`
}

// TrainingConfig contains settings for the simulated trainer.
type TrainingConfig struct {
	IntervalMS int `toml:"interval_ms"`
	Step       int `toml:"step"`
	FailAt     int `toml:"fail_at"`
}

// ArtifactsConfig contains download artifact settings.
type ArtifactsConfig struct {
	OutputDir string `toml:"output_dir"`
}

// Interval returns the tick interval as a [time.Duration].
func (c TrainingConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// MaxSizeBytes returns the upload size limit in bytes; zero means unlimited.
func (c UploadConfig) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// Validate checks value ranges that would otherwise stall or skip training.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Training.IntervalMS <= 0 {
		return fmt.Errorf("%w: training.interval_ms must be positive, got %d", ErrInvalidConfig, c.Training.IntervalMS)
	}
	if c.Training.Step <= 0 || c.Training.Step > 100 {
		return fmt.Errorf("%w: training.step must be in 1..100, got %d", ErrInvalidConfig, c.Training.Step)
	}
	if c.Training.FailAt < 0 || c.Training.FailAt > 100 {
		return fmt.Errorf("%w: training.fail_at must be in 0..100, got %d", ErrInvalidConfig, c.Training.FailAt)
	}
	if c.Upload.MaxSizeMB < 0 {
		return fmt.Errorf("%w: upload.max_size_mb must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// LoadConfigOrDefault loads the config at path when it exists and falls back to [DefaultConfig] otherwise.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	config, err := LoadConfig(path)
	if errors.Is(err, ErrMissingConfig) {
		return DefaultConfig(), nil
	}
	return config, err
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
