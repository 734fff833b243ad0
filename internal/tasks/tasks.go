// package tasks implements the dataset and training stages of the Visual Lab workflow.
//
// The core abstraction is Engine, which validates uploads, loads dataset summaries, and trains models.
// Training emits progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
)

// DataSource loads a preview and summary statistics for an uploaded file.
type DataSource interface {
	// Load returns the preview and statistics for file.
	Load(ctx context.Context, file models.FileRef) (*models.DatasetPreview, *models.DatasetStats, error)

	// Name returns the name of the source (e.g., "mock")
	Name() string
}

// Trainer fits a model on a loaded dataset.
type Trainer interface {
	// Train reports progress on the channel and returns the resulting metrics.
	// Cancelling ctx stops training with [shared.ErrTrainingCancelled].
	Train(ctx context.Context, stats *models.DatasetStats, progress chan<- ProgressUpdate) (*models.ModelMetrics, error)

	// Name returns the name of the trainer (e.g., "simulated")
	Name() string
}

// UploadResult contains everything an upload produces.
type UploadResult struct {
	File    models.FileRef
	Preview *models.DatasetPreview
	Stats   *models.DatasetStats
}

// Engine runs uploads and training against pluggable backends.
type Engine struct {
	source  DataSource
	trainer Trainer
	upload  shared.UploadConfig
	logger  *log.Logger
}

// EngineOpts contains configuration options for creating an Engine.
type EngineOpts struct {
	Source  DataSource
	Trainer Trainer
	Upload  shared.UploadConfig
	Logger  *log.Logger
}

// NewEngine creates a new Engine, defaulting to [MockSource] and a default [SimulatedTrainer].
func NewEngine(opts EngineOpts) *Engine {
	if opts.Source == nil {
		opts.Source = NewMockSource()
	}
	if opts.Trainer == nil {
		opts.Trainer = NewSimulatedTrainer(shared.TrainingConfig{})
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Engine{
		source:  opts.Source,
		trainer: opts.Trainer,
		upload:  opts.Upload,
		logger:  opts.Logger,
	}
}

// NewEngineFromConfig creates an Engine with the mock source and a simulated trainer configured from config.
func NewEngineFromConfig(config *shared.Config, logger *log.Logger) *Engine {
	return NewEngine(EngineOpts{
		Source:  NewMockSource(),
		Trainer: NewSimulatedTrainer(config.Training),
		Upload:  config.Upload,
		Logger:  logger,
	})
}

// SetLogger replaces the engine logger.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// TrainerName returns the name of the configured trainer.
func (e *Engine) TrainerName() string {
	if e.trainer == nil {
		return ""
	}
	return e.trainer.Name()
}

// sendProgress sends a progress update, blocking until it is received or ctx is done.
func sendProgress(ctx context.Context, progress chan<- ProgressUpdate, update ProgressUpdate) error {
	if progress == nil {
		return nil
	}
	select {
	case progress <- update:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Upload inspects the file at path and loads its preview and statistics.
//
// The returned preview and statistics have been validated.
func (e *Engine) Upload(ctx context.Context, path string) (*UploadResult, error) {
	return e.UploadWithProgress(ctx, path, nil)
}

// UploadWithProgress is [Engine.Upload] reporting an [InspectFile] and a [LoadDataset] update on progress.
//
// A nil channel disables reporting. The progress channel is not closed.
func (e *Engine) UploadWithProgress(ctx context.Context, path string, progress chan<- ProgressUpdate) (*UploadResult, error) {
	file, err := Inspect(path, e.upload)
	if err != nil {
		e.logger.Warn("upload rejected", "path", path, "error", err)
		return nil, err
	}

	if !ExtensionAllowed(file, e.upload.AllowedExtensions) {
		e.logger.Warn("unexpected file extension", "file", file.Name, "allowed", e.upload.AllowedExtensions)
	}
	if err := sendProgress(ctx, progress, fileInspectedUpdate(file)); err != nil {
		return nil, err
	}

	preview, stats, err := e.source.Load(ctx, file)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrParse, e.source.Name(), err)
	}
	if preview == nil || stats == nil {
		return nil, fmt.Errorf("%w: %s returned no dataset", shared.ErrParse, e.source.Name())
	}
	if err := preview.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParse, err)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParse, err)
	}

	e.logger.Info("dataset loaded", "file", file.Name, "mime", file.MIME, "rows", stats.Rows, "columns", stats.Columns)
	if err := sendProgress(ctx, progress, datasetLoadedUpdate(file, stats)); err != nil {
		return nil, err
	}
	return &UploadResult{File: file, Preview: preview, Stats: stats}, nil
}

// Train runs the trainer on stats, forwarding its progress updates.
//
// The progress channel is not closed by Train.
func (e *Engine) Train(ctx context.Context, stats *models.DatasetStats, progress chan<- ProgressUpdate) (*models.ModelMetrics, error) {
	if e.trainer == nil {
		return nil, fmt.Errorf("%w: trainer not initialized", shared.ErrServiceUnavailable)
	}

	e.logger.Info("training started", "trainer", e.trainer.Name())
	metrics, err := e.trainer.Train(ctx, stats, progress)
	if err != nil {
		e.logger.Warn("training stopped", "trainer", e.trainer.Name(), "error", err)
		return nil, err
	}
	if metrics == nil {
		return nil, fmt.Errorf("%w: %s returned no metrics", shared.ErrTraining, e.trainer.Name())
	}
	if err := metrics.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTraining, err)
	}

	e.logger.Info("training complete", "accuracy", metrics.Accuracy, "f1", metrics.F1)
	return metrics, nil
}

// Profile describes the loaded dataset as a [ProgressUpdate], for headless callers.
func Profile(result *UploadResult) ProgressUpdate {
	return datasetLoadedUpdate(result.File, result.Stats)
}
