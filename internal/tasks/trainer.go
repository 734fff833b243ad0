package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	"golang.org/x/time/rate"
)

// SimulatedMetrics are the scores every simulated run produces.
var SimulatedMetrics = models.ModelMetrics{
	Accuracy:  0.89,
	Precision: 0.87,
	Recall:    0.86,
	F1:        0.865,
}

// SimulatedTrainer is a [Trainer] that advances progress by Step every Interval and then returns [SimulatedMetrics].
type SimulatedTrainer struct {
	Interval time.Duration // Time between ticks
	Step     int           // Percentage points per tick
	FailAt   int           // Fail once progress reaches this percentage; 0 disables
	Metrics  models.ModelMetrics
}

// NewSimulatedTrainer creates a SimulatedTrainer from [shared.TrainingConfig], falling back to 500ms and 10% for unset values.
func NewSimulatedTrainer(cfg shared.TrainingConfig) *SimulatedTrainer {
	t := &SimulatedTrainer{
		Interval: cfg.Interval(),
		Step:     cfg.Step,
		FailAt:   cfg.FailAt,
		Metrics:  SimulatedMetrics,
	}
	if t.Interval <= 0 {
		t.Interval = 500 * time.Millisecond
	}
	if t.Step <= 0 {
		t.Step = 10
	}
	return t
}

// Name returns the trainer name.
func (t *SimulatedTrainer) Name() string { return "simulated" }

// Ticks returns the number of ticks a full run takes.
func (t *SimulatedTrainer) Ticks() int {
	return (100 + t.Step - 1) / t.Step
}

// Train emits one [ProgressUpdate] per tick until progress reaches 100.
func (t *SimulatedTrainer) Train(ctx context.Context, stats *models.DatasetStats, progress chan<- ProgressUpdate) (*models.ModelMetrics, error) {
	if stats == nil {
		return nil, fmt.Errorf("%w: no dataset loaded", shared.ErrTraining)
	}

	total := t.Ticks()
	limiter := rate.NewLimiter(rate.Every(t.Interval), 1)
	// Spend the initial burst so the first tick waits a full interval.
	limiter.Allow()

	if err := sendProgress(ctx, progress, trainingStartedUpdate(total)); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTrainingCancelled, err)
	}

	percent := 0
	for step := 1; percent < 100; step++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrTrainingCancelled, err)
		}

		percent = min(percent+t.Step, 100)
		if err := sendProgress(ctx, progress, trainingTickUpdate(step, total, percent)); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrTrainingCancelled, err)
		}

		if t.FailAt > 0 && percent >= t.FailAt {
			return nil, fmt.Errorf("%w: simulated failure at %d%%", shared.ErrTraining, percent)
		}
	}

	metrics := t.Metrics
	return &metrics, nil
}
