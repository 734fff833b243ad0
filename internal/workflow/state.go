package workflow

import "github.com/desertthunder/visuallab/internal/models"

// Phase is the training state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTraining
	PhaseComplete
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTraining:
		return "training"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return ""
	}
}

// NoticeKind classifies a [Notice].
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a dismissible message shown to the user.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

// State is all data held by one open session of the view.
type State struct {
	ID        string
	ActiveTab Tab
	File      *models.FileRef
	Preview   *models.DatasetPreview
	Stats     *models.DatasetStats
	Training  bool
	Progress  int
	Metrics   *models.ModelMetrics
	Phase     Phase
	Notice    *Notice
}

// New returns an empty session on the Upload tab.
func New(id string) State {
	return State{ID: id, ActiveTab: TabUpload, Phase: PhaseIdle}
}

// HasFile reports whether a dataset has been uploaded.
func (s State) HasFile() bool {
	return s.File != nil
}

// HasModel reports whether model metrics are available.
func (s State) HasModel() bool {
	return s.Metrics != nil
}

// Enabled reports whether tab can be selected.
func (s State) Enabled(tab Tab) bool {
	switch tab {
	case TabUpload:
		return true
	case TabProfiling, TabModeling:
		return s.HasFile()
	case TabDownload:
		return s.HasModel()
	default:
		return false
	}
}

// EnabledTabs lists the selectable tabs in display order.
func (s State) EnabledTabs() []Tab {
	tabs := make([]Tab, 0, len(Tabs))
	for _, t := range Tabs {
		if s.Enabled(t) {
			tabs = append(tabs, t)
		}
	}
	return tabs
}
