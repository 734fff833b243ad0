package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
)

// SelectTab activates tab when it is enabled; otherwise s is returned unchanged.
func SelectTab(s State, tab Tab) State {
	if !tab.Valid() || !s.Enabled(tab) {
		return s
	}
	s.ActiveTab = tab
	return s
}

// NextTab activates the next enabled tab after the active one, wrapping around.
func NextTab(s State) State {
	return cycle(s, 1)
}

// PrevTab activates the previous enabled tab before the active one, wrapping around.
func PrevTab(s State) State {
	return cycle(s, -1)
}

func cycle(s State, dir int) State {
	n := len(Tabs)
	for i := 1; i < n; i++ {
		next := Tab(((int(s.ActiveTab)+dir*i)%n + n) % n)
		if s.Enabled(next) {
			s.ActiveTab = next
			return s
		}
	}
	return s
}

// Upload stores file, preview and stats together.
//
// A nil or empty file leaves s unchanged, as does an upload while training is in progress.
func Upload(s State, file *models.FileRef, preview *models.DatasetPreview, stats *models.DatasetStats) State {
	if file == nil || file.IsZero() || s.Training {
		return s
	}
	f := *file
	s.File = &f
	s.Preview = preview
	s.Stats = stats
	s.Notice = &Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("%s uploaded successfully", f.Name)}
	return s
}

// UploadFailed records err as a notice and leaves the dataset untouched.
func UploadFailed(s State, err error) State {
	return NotifyError(s, err)
}

// StartTraining enters the training phase with progress reset to zero.
//
// The second return value is false, and s unchanged, when no file is present or training is already running.
func StartTraining(s State) (State, bool) {
	if !s.HasFile() || s.Training {
		return s, false
	}
	s.Training = true
	s.Progress = 0
	s.Phase = PhaseTraining
	s.Notice = nil
	return s, true
}

// ApplyProgress moves progress forward to percent, clamped to [0,100].
//
// Lower values and updates outside of training are ignored.
func ApplyProgress(s State, percent int) State {
	if !s.Training {
		return s
	}
	percent = min(max(percent, 0), 100)
	if percent > s.Progress {
		s.Progress = percent
	}
	return s
}

// CompleteTraining publishes metrics and leaves the training phase.
//
// Ignored unless training is in progress, so metrics are published once per run.
func CompleteTraining(s State, metrics *models.ModelMetrics) State {
	if !s.Training || metrics == nil {
		return s
	}
	m := *metrics
	s.Training = false
	s.Progress = 100
	s.Metrics = &m
	s.Phase = PhaseComplete
	s.Notice = &Notice{Kind: NoticeSuccess, Message: "Training complete"}
	return s
}

// FailTraining leaves the training phase after err, keeping progress and any previous metrics.
//
// Cancellation returns the session to [PhaseIdle] with an informational notice.
func FailTraining(s State, err error) State {
	if !s.Training {
		return s
	}
	s.Training = false
	if errors.Is(err, shared.ErrTrainingCancelled) {
		s.Phase = PhaseIdle
		s.Notice = &Notice{Kind: NoticeInfo, Message: "Training cancelled", Err: err}
		return s
	}
	s.Phase = PhaseFailed
	s.Notice = &Notice{Kind: NoticeError, Message: describe(err), Err: err}
	return s
}

// Notify replaces the current notice with message.
func Notify(s State, kind NoticeKind, message string) State {
	s.Notice = &Notice{Kind: kind, Message: message}
	return s
}

// NotifyError replaces the current notice with an error notice for err.
func NotifyError(s State, err error) State {
	if err == nil {
		return s
	}
	s.Notice = &Notice{Kind: NoticeError, Message: describe(err), Err: err}
	return s
}

// DismissNotice clears the current notice.
func DismissNotice(s State) State {
	s.Notice = nil
	return s
}

func describe(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
