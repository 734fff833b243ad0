package tasks

import (
	"fmt"

	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Percent int    // Overall completion, 0-100
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	InspectFile Phase = iota
	LoadDataset
	TrainModel
)

func (p Phase) String() string {
	switch p {
	case InspectFile:
		return "inspect_file"
	case LoadDataset:
		return "load_dataset"
	case TrainModel:
		return "train_model"
	default:
		return ""
	}
}

func fileInspectedUpdate(file models.FileRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InspectFile,
		Step:    1,
		Total:   1,
		Percent: 100,
		Message: fmt.Sprintf("Inspected %s (%s, %s)", file.Name, file.MIME, shared.FormatBytes(file.Size)),
		Data:    file,
	}
}

func trainingStartedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TrainModel,
		Step:    0,
		Total:   total,
		Percent: 0,
		Message: "Training models...",
	}
}

func trainingTickUpdate(step, total, percent int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TrainModel,
		Step:    step,
		Total:   total,
		Percent: percent,
		Message: fmt.Sprintf("[%d/%d] %d%% Complete", step, total, percent),
	}
}

func datasetLoadedUpdate(file models.FileRef, stats *models.DatasetStats) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadDataset,
		Step:    1,
		Total:   1,
		Percent: 100,
		Message: fmt.Sprintf("Loaded %s (%d rows, %d columns)", file.Name, stats.Rows, stats.Columns),
		Data:    stats,
	}
}
