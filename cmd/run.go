package main

import (
	"context"
	"time"

	"github.com/desertthunder/visuallab/internal/formatter"
	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/desertthunder/visuallab/internal/tasks"
	"github.com/desertthunder/visuallab/internal/workflow"
	"github.com/urfave/cli/v3"
)

// profileSummary is the JSON form of a dataset profile.
type profileSummary struct {
	File         models.FileRef         `json:"file"`
	Preview      *models.DatasetPreview `json:"preview"`
	Stats        *models.DatasetStats   `json:"stats"`
	Completeness float64                `json:"completeness"`
}

// runSummary is the JSON form of a completed headless run.
type runSummary struct {
	SessionID string               `json:"session_id"`
	File      models.FileRef       `json:"file"`
	Stats     *models.DatasetStats `json:"stats"`
	Metrics   *models.ModelMetrics `json:"metrics"`
	Artifacts []string             `json:"artifacts"`
}

// Profile uploads a dataset and prints its preview and statistics.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	result, err := r.engine.Upload(ctx, cmd.String("file"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profileSummary{
			File:         result.File,
			Preview:      result.Preview,
			Stats:        result.Stats,
			Completeness: result.Stats.Completeness(),
		}, cmd.Bool("pretty"))
	}

	r.printProfile(result)
	return nil
}

// Run uploads, profiles and trains on a dataset, then writes the model manifest, report and metrics.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}
	quiet := cmd.Bool("json")
	outputDir, err := r.outputDir(cmd)
	if err != nil {
		return err
	}

	state := workflow.New(shared.GenerateID())
	logger := shared.WithLogger(r.logger, "session", shared.ShortID(state.ID))

	// Upload sends at most two updates, so the buffer never blocks it
	uploadCh := make(chan tasks.ProgressUpdate, 2)
	result, err := r.engine.UploadWithProgress(ctx, cmd.String("file"), uploadCh)
	close(uploadCh)
	if err != nil {
		return err
	}
	for update := range uploadCh {
		logger.Debug("upload progress", "phase", update.Phase, "message", update.Message)
		if !quiet && update.Phase == tasks.InspectFile {
			r.writePlain("🔍 %s\n", update.Message)
		}
	}
	state = workflow.Upload(state, &result.File, result.Preview, result.Stats)
	if !quiet {
		r.printProfile(result)
	}

	state, _ = workflow.StartTraining(state)
	logger.Info("training started", "trainer", r.engine.TrainerName())
	if !quiet {
		r.writePlainln("🧠 Training models...")
	}

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 10)
	lastPercent := make(chan int, 1)
	go func() {
		last := 0
		for update := range progressCh {
			last = update.Percent
			if !quiet && update.Step > 0 {
				r.writePlain("   %s\n", update.Message)
			}
		}
		lastPercent <- last
	}()

	metrics, err := r.engine.Train(ctx, state.Stats, progressCh)
	close(progressCh)
	state = workflow.ApplyProgress(state, <-lastPercent)

	if err != nil {
		state = workflow.FailTraining(state, err)
		logger.Warn("training stopped", "phase", state.Phase, "progress", state.Progress)
		return err
	}
	state = workflow.CompleteTraining(state, metrics)

	export := &formatter.SessionExport{
		SessionID: state.ID,
		File:      *state.File,
		Stats:     state.Stats,
		Metrics:   state.Metrics,
		Trainer:   r.engine.TrainerName(),
		CreatedAt: time.Now(),
	}
	artifacts, err := formatter.WriteArtifacts(export, outputDir)
	if err != nil {
		return err
	}
	logger.Info("artifacts written", "dir", artifacts.Directory)

	if quiet {
		return r.writeJSON(runSummary{
			SessionID: state.ID,
			File:      *state.File,
			Stats:     state.Stats,
			Metrics:   state.Metrics,
			Artifacts: artifacts.Files(),
		}, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Training Complete!")
	r.writePlain("%s\n", formatter.RenderMetricsTable(state.Metrics))
	r.writePlainln("Artifacts:")
	for _, path := range artifacts.Files() {
		r.writePlain("  - %s\n", path)
	}
	return nil
}

func (r *Runner) printProfile(result *tasks.UploadResult) {
	stats := result.Stats

	r.writePlainHeader("Dataset Profile")
	r.writePlain("📥 %s\n\n", tasks.Profile(result).Message)
	r.writePlain("%s\n\n", formatter.RenderPreviewTable(result.Preview))
	r.writePlain("Rows: %d\n", stats.Rows)
	r.writePlain("Columns: %d\n", stats.Columns)
	r.writePlain("Missing Values: %d\n", stats.MissingValues)
	r.writePlain("Numeric Features: %d (%s)\n", stats.DataTypes.Numeric, shared.FormatPercent(stats.NumericShare()))
	r.writePlain("Categorical Features: %d (%s)\n", stats.DataTypes.Categorical, shared.FormatPercent(stats.CategoricalShare()))
	r.writePlain("Completeness: %s\n", shared.FormatPercent(stats.Completeness()))
}
