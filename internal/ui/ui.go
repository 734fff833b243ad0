package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/visuallab/internal/formatter"
	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/desertthunder/visuallab/internal/tasks"
	"github.com/desertthunder/visuallab/internal/workflow"
)

const progressBuffer = 16

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	engine     *tasks.Engine
	logger     *log.Logger
	outputDir  string
	state      workflow.State
	width      int
	height     int
	input      textinput.Model
	preview    table.Model
	bar        progress.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	uploading  bool
	run        *trainingRun
	lastUpdate tasks.ProgressUpdate
	saved      []string
}

// ModelOpts contains configuration options for creating a Model.
type ModelOpts struct {
	SessionID string      // Defaults to a new UUID
	OutputDir string      // Directory for downloaded artifacts
	Logger    *log.Logger // Defaults to stderr; use a file logger while the TUI owns the terminal
}

// trainingRun is a single cancellable training attempt.
type trainingRun struct {
	id       string
	progress chan tasks.ProgressUpdate
	done     chan trainingResult
	cancel   context.CancelFunc
}

type trainingResult struct {
	metrics *models.ModelMetrics
	err     error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.Engine, opts ModelOpts) *Model {
	if opts.SessionID == "" {
		opts.SessionID = shared.GenerateID()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	input := textinput.New()
	input.Placeholder = "path/to/dataset.csv"
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Width = 60
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = styles.heading

	return &Model{
		ctx:       ctx,
		engine:    engine,
		logger:    shared.WithLogger(opts.Logger, "session", shared.ShortID(opts.SessionID)),
		outputDir: opts.OutputDir,
		state:     workflow.New(opts.SessionID),
		input:     input,
		preview:   table.New(table.WithFocused(false)),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		spinner:   spin,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// State returns a copy of the current session state.
func (m *Model) State() workflow.State {
	return m.state
}

// Init starts the cursor blinking in the upload field.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-32, 20), 60)
		m.input.Width = min(max(msg.Width-8, 20), 80)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if !m.state.Training {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgUploaded:
		data := msg.data.(uploadedData)
		m.uploading = false
		if data.err != nil {
			m.state = workflow.UploadFailed(m.state, data.err)
			return m, nil
		}
		file := data.result.File
		if m.state.Training {
			m.logger.Warn("upload ignored while training", "file", file.Name)
			m.state = workflow.Notify(m.state, workflow.NoticeInfo, "Upload ignored while training; upload again when training finishes")
			return m, nil
		}
		m.state = workflow.Upload(m.state, &file, data.result.Preview, data.result.Stats)
		m.logger.Info("dataset uploaded", "file", file.Name, "rows", data.result.Stats.Rows)
		m.input.SetValue("")
		m.refreshPreview()
		return m, nil

	case MsgProgressUpdate:
		data := msg.data.(progressData)
		if m.run == nil || data.runID != m.run.id {
			return m, nil
		}
		m.lastUpdate = data.update
		m.state = workflow.ApplyProgress(m.state, data.update.Percent)
		return m, waitForProgress(m.run)

	case MsgTrainingDone:
		data := msg.data.(trainingDoneData)
		if m.run == nil || data.runID != m.run.id {
			return m, nil
		}
		logger := shared.WithLogger(m.logger, "run", shared.ShortID(m.run.id))
		m.run = nil
		if data.err != nil {
			logger.Warn("training run stopped", "error", data.err)
			m.state = workflow.FailTraining(m.state, data.err)
			return m, nil
		}
		logger.Info("training run complete", "accuracy", data.metrics.Accuracy)
		m.state = workflow.CompleteTraining(m.state, data.metrics)
		return m, nil

	case MsgArtifactWritten:
		data := msg.data.(artifactData)
		if data.err != nil {
			m.logger.Error("failed to save artifact", "artifact", data.label, "error", data.err)
			m.state = workflow.NotifyError(m.state, data.err)
			return m, nil
		}
		m.logger.Info("artifact saved", "artifact", data.label, "path", data.path)
		if !slices.Contains(m.saved, data.path) {
			m.saved = append(m.saved, data.path)
		}
		m.state = workflow.Notify(m.state, workflow.NoticeSuccess, fmt.Sprintf("%s saved to %s", data.label, data.path))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input.Focused() {
		return m.handleInputKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.next):
		return m, m.setTabState(workflow.NextTab(m.state))
	case key.Matches(msg, m.keys.prev):
		return m, m.setTabState(workflow.PrevTab(m.state))
	case key.Matches(msg, m.keys.upload):
		return m, m.selectTab(workflow.TabUpload)
	case key.Matches(msg, m.keys.profile):
		return m, m.selectTab(workflow.TabProfiling)
	case key.Matches(msg, m.keys.modeling):
		return m, m.selectTab(workflow.TabModeling)
	case key.Matches(msg, m.keys.download):
		return m, m.selectTab(workflow.TabDownload)
	case key.Matches(msg, m.keys.dismiss):
		m.state = workflow.DismissNotice(m.state)
	case key.Matches(msg, m.keys.cancel):
		m.cancelTraining()
	case key.Matches(msg, m.keys.focus):
		if m.state.ActiveTab == workflow.TabUpload {
			return m, m.input.Focus()
		}
	case key.Matches(msg, m.keys.train):
		if m.state.ActiveTab == workflow.TabModeling {
			return m, m.startTraining()
		}
	case key.Matches(msg, m.keys.model):
		if m.state.ActiveTab == workflow.TabDownload {
			return m, m.writeArtifact("Model", formatter.WriteModelManifest)
		}
	case key.Matches(msg, m.keys.report):
		if m.state.ActiveTab == workflow.TabDownload {
			return m, m.writeArtifact("Training report", formatter.WriteReport)
		}
	}
	return m, nil
}

// handleInputKeys routes keys while the upload field has focus; printable keys go to the field.
func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, m.quit()
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m, m.submitUpload()
	case tea.KeyTab:
		return m, m.setTabState(workflow.NextTab(m.state))
	case tea.KeyShiftTab:
		return m, m.setTabState(workflow.PrevTab(m.state))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) selectTab(tab workflow.Tab) tea.Cmd {
	return m.setTabState(workflow.SelectTab(m.state, tab))
}

// setTabState applies a tab transition, moving focus into the upload field when the Upload tab becomes active.
func (m *Model) setTabState(next workflow.State) tea.Cmd {
	changed := next.ActiveTab != m.state.ActiveTab
	m.state = next
	if !changed {
		return nil
	}
	m.logger.Debug("tab selected", "tab", next.ActiveTab)
	if next.ActiveTab == workflow.TabUpload {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) submitUpload() tea.Cmd {
	path := strings.Trim(strings.TrimSpace(m.input.Value()), `"'`)
	if path == "" {
		m.state = workflow.UploadFailed(m.state, fmt.Errorf("%w: enter the path of a dataset file", shared.ErrMissingArgument))
		return nil
	}
	if m.state.Training {
		m.state = workflow.Notify(m.state, workflow.NoticeInfo, "Wait for training to finish before uploading another dataset")
		return nil
	}

	m.uploading = true
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		result, err := engine.Upload(ctx, path)
		return uploadedMsg(result, err)
	}
}

func (m *Model) startTraining() tea.Cmd {
	next, ok := workflow.StartTraining(m.state)
	if !ok {
		return nil
	}
	m.state = next

	ctx, cancel := context.WithCancel(m.ctx)
	run := &trainingRun{
		id:       shared.GenerateID(),
		progress: make(chan tasks.ProgressUpdate, progressBuffer),
		done:     make(chan trainingResult, 1),
		cancel:   cancel,
	}
	m.run = run
	m.lastUpdate = tasks.ProgressUpdate{}
	m.logger.Info("training run started", "run", shared.ShortID(run.id), "trainer", m.engine.TrainerName())

	go run.start(ctx, m.engine, m.state.Stats)
	return tea.Batch(waitForProgress(run), m.spinner.Tick)
}

func (m *Model) cancelTraining() {
	if m.run == nil {
		return
	}
	m.logger.Info("cancelling training run", "run", shared.ShortID(m.run.id))
	m.run.cancel()
}

func (m *Model) quit() tea.Cmd {
	m.cancelTraining()
	return tea.Quit
}

// start trains in the calling goroutine, then closes progress and reports the result on done.
func (r *trainingRun) start(ctx context.Context, engine *tasks.Engine, stats *models.DatasetStats) {
	defer r.cancel()
	metrics, err := engine.Train(ctx, stats, r.progress)
	close(r.progress)
	r.done <- trainingResult{metrics: metrics, err: err}
}

// waitForProgress receives the next update of run, or its result once the progress channel is closed.
func waitForProgress(run *trainingRun) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-run.progress
		if !ok {
			result := <-run.done
			return trainingDoneMsg(run.id, result.metrics, result.err)
		}
		return progressUpdateMsg(run.id, update)
	}
}

func (m *Model) export() *formatter.SessionExport {
	export := &formatter.SessionExport{
		SessionID: m.state.ID,
		Stats:     m.state.Stats,
		Metrics:   m.state.Metrics,
		Trainer:   m.engine.TrainerName(),
		CreatedAt: time.Now(),
	}
	if m.state.File != nil {
		export.File = *m.state.File
	}
	return export
}

func (m *Model) writeArtifact(label string, write func(*formatter.SessionExport, string) (string, error)) tea.Cmd {
	if !m.state.HasModel() {
		return nil
	}
	export, dir := m.export(), m.outputDir
	return func() tea.Msg {
		path, err := write(export, dir)
		return artifactWrittenMsg(label, path, err)
	}
}

// refreshPreview rebuilds the preview table from the session preview.
func (m *Model) refreshPreview() {
	preview := m.state.Preview
	if preview == nil {
		return
	}

	columns := make([]table.Column, len(preview.Columns))
	for i, name := range preview.Columns {
		width := len(name)
		for _, row := range preview.Rows {
			width = max(width, len(row[i]))
		}
		columns[i] = table.Column{Title: name, Width: width + 2}
	}

	rows := make([]table.Row, len(preview.Rows))
	for i, row := range preview.Rows {
		rows[i] = table.Row(slices.Clone(row))
	}

	m.preview = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
}
