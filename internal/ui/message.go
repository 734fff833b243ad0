package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgUploaded MsgKind = iota
	MsgProgressUpdate
	MsgTrainingDone
	MsgArtifactWritten
)

type uploadedData struct {
	result *tasks.UploadResult
	err    error
}

type progressData struct {
	runID  string
	update tasks.ProgressUpdate
}

type trainingDoneData struct {
	runID   string
	metrics *models.ModelMetrics
	err     error
}

type artifactData struct {
	label string
	path  string
	err   error
}

// uploadedMsg is the constructor for [MsgUploaded]
func uploadedMsg(result *tasks.UploadResult, err error) Msg {
	return Msg{kind: MsgUploaded, data: uploadedData{result, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(runID string, update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: progressData{runID, update}}
}

// trainingDoneMsg is the constructor for [MsgTrainingDone]
func trainingDoneMsg(runID string, metrics *models.ModelMetrics, err error) Msg {
	return Msg{kind: MsgTrainingDone, data: trainingDoneData{runID, metrics, err}}
}

// artifactWrittenMsg is the constructor for [MsgArtifactWritten]
func artifactWrittenMsg(label, path string, err error) Msg {
	return Msg{kind: MsgArtifactWritten, data: artifactData{label, path, err}}
}
