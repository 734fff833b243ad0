// package formatter renders workflow results as downloadable artifacts (JSON model manifest, Markdown report, CSV metrics) and terminal tables
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
)

// ManifestFormat tags model manifests so readers can reject other JSON files.
const ManifestFormat = "visuallab/model-manifest"

// ManifestVersion is the current manifest schema version.
const ManifestVersion = 1

// SessionExport is the snapshot of a trained session that artifacts are built from.
type SessionExport struct {
	SessionID string
	File      models.FileRef
	Stats     *models.DatasetStats
	Metrics   *models.ModelMetrics
	Trainer   string
	CreatedAt time.Time
}

// Validate checks that the export carries a dataset and a trained model.
func (e *SessionExport) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("%w: session id is required", shared.ErrInvalidInput)
	}
	if e.Stats == nil {
		return fmt.Errorf("%w: no dataset statistics", shared.ErrInvalidInput)
	}
	if e.Metrics == nil {
		return shared.ErrNoModel
	}
	return nil
}

// BaseName returns the file name prefix shared by all artifacts of the export.
func (e *SessionExport) BaseName() string {
	return "visuallab_" + shared.ShortID(e.SessionID)
}

// ModelManifest is the JSON document written as the model artifact.
//
// It records what was trained and how well; no model parameters are stored.
type ModelManifest struct {
	Format    string              `json:"format"`
	Version   int                 `json:"version"`
	SessionID string              `json:"session_id"`
	Trainer   string              `json:"trainer,omitempty"`
	Dataset   ManifestDataset     `json:"dataset"`
	Metrics   models.ModelMetrics `json:"metrics"`
	CreatedAt time.Time           `json:"created_at"`
}

// ManifestDataset describes the dataset a manifest was trained on.
type ManifestDataset struct {
	File  string              `json:"file"`
	Size  int64               `json:"size"`
	MIME  string              `json:"mime,omitempty"`
	Stats models.DatasetStats `json:"stats"`
}

// NewModelManifest builds the manifest for a validated export.
func NewModelManifest(export *SessionExport) *ModelManifest {
	return &ModelManifest{
		Format:    ManifestFormat,
		Version:   ManifestVersion,
		SessionID: export.SessionID,
		Trainer:   export.Trainer,
		Dataset: ManifestDataset{
			File:  export.File.Name,
			Size:  export.File.Size,
			MIME:  export.File.MIME,
			Stats: *export.Stats,
		},
		Metrics:   *export.Metrics,
		CreatedAt: export.CreatedAt.UTC(),
	}
}

// ExportModelManifest renders the model manifest as indented JSON.
func ExportModelManifest(export *SessionExport) ([]byte, error) {
	if err := export.Validate(); err != nil {
		return nil, err
	}
	return shared.MarshalJSON(NewModelManifest(export), true)
}

// ExportMetricsCSV converts model metrics to CSV format with columns: metric, value
func ExportMetricsCSV(metrics *models.ModelMetrics) ([]byte, error) {
	if metrics == nil {
		return nil, shared.ErrNoModel
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"metric", "value"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, metric := range metrics.List() {
		record := []string{metric.Label, strconv.FormatFloat(metric.Value, 'f', -1, 64)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportReportMarkdown renders the training report in Markdown format
func ExportReportMarkdown(export *SessionExport) ([]byte, error) {
	if err := export.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	stats := export.Stats

	buf.WriteString("# Training Report\n\n")
	buf.WriteString(fmt.Sprintf("**Session**: %s\n", export.SessionID))
	buf.WriteString(fmt.Sprintf("**Dataset**: %s (%s)\n", export.File.Name, shared.FormatBytes(export.File.Size)))
	if export.Trainer != "" {
		buf.WriteString(fmt.Sprintf("**Trainer**: %s\n", export.Trainer))
	}
	buf.WriteString(fmt.Sprintf("**Created**: %s\n\n", export.CreatedAt.UTC().Format(time.RFC3339)))

	buf.WriteString("## Dataset\n\n")
	buf.WriteString(fmt.Sprintf("- Rows: %d\n", stats.Rows))
	buf.WriteString(fmt.Sprintf("- Columns: %d\n", stats.Columns))
	buf.WriteString(fmt.Sprintf("- Missing Values: %d\n", stats.MissingValues))
	buf.WriteString(fmt.Sprintf("- Completeness: %s\n\n", shared.FormatPercent(stats.Completeness())))

	buf.WriteString("## Data Types\n\n")
	buf.WriteString(fmt.Sprintf("- Numeric Features: %d (%s)\n", stats.DataTypes.Numeric, shared.FormatPercent(stats.NumericShare())))
	buf.WriteString(fmt.Sprintf("- Categorical Features: %d (%s)\n\n", stats.DataTypes.Categorical, shared.FormatPercent(stats.CategoricalShare())))

	buf.WriteString("## Metrics\n\n")
	buf.WriteString("| Metric | Score |\n")
	buf.WriteString("| --- | --- |\n")
	for _, metric := range export.Metrics.List() {
		buf.WriteString(fmt.Sprintf("| %s | %s |\n", metric.Label, shared.FormatPercent(metric.Value)))
	}

	return buf.Bytes(), nil
}

// RenderPreviewTable renders a dataset preview as a bordered terminal table.
func RenderPreviewTable(preview *models.DatasetPreview) string {
	if preview == nil {
		return ""
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(preview.Columns...).
		Rows(preview.Rows...)
	return t.Render()
}

// RenderMetricsTable renders metrics as a two-column terminal table.
func RenderMetricsTable(metrics *models.ModelMetrics) string {
	if metrics == nil {
		return ""
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Metric", "Score")
	for _, metric := range metrics.List() {
		t.Row(metric.Label, shared.FormatPercent(metric.Value))
	}
	return t.Render()
}

// ArtifactResult contains the paths of files created by [WriteArtifacts]
type ArtifactResult struct {
	Directory   string
	ModelFile   string
	ReportFile  string
	MetricsFile string
}

// Files lists the written paths in a stable order.
func (r *ArtifactResult) Files() []string {
	var files []string
	for _, f := range []string{r.ModelFile, r.ReportFile, r.MetricsFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// WriteModelManifest writes {base}_model.json into dir and returns its path.
func WriteModelManifest(export *SessionExport, dir string) (string, error) {
	data, err := ExportModelManifest(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate model manifest: %w", err)
	}
	return writeArtifact(dir, export.BaseName()+"_model.json", data)
}

// WriteReport writes {base}_report.md into dir and returns its path.
func WriteReport(export *SessionExport, dir string) (string, error) {
	data, err := ExportReportMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}
	return writeArtifact(dir, export.BaseName()+"_report.md", data)
}

// WriteMetricsCSV writes {base}_metrics.csv into dir and returns its path.
func WriteMetricsCSV(export *SessionExport, dir string) (string, error) {
	if err := export.Validate(); err != nil {
		return "", err
	}
	data, err := ExportMetricsCSV(export.Metrics)
	if err != nil {
		return "", fmt.Errorf("failed to generate metrics CSV: %w", err)
	}
	return writeArtifact(dir, export.BaseName()+"_metrics.csv", data)
}

// WriteArtifacts writes the model manifest, training report and metrics CSV into dir.
//
// Defaults to the current directory when dir is empty.
func WriteArtifacts(export *SessionExport, dir string) (*ArtifactResult, error) {
	if dir == "" {
		dir = "."
	}
	if err := export.Validate(); err != nil {
		return nil, err
	}

	result := &ArtifactResult{Directory: dir}
	var err error

	if result.ModelFile, err = WriteModelManifest(export, dir); err != nil {
		return result, err
	}
	if result.ReportFile, err = WriteReport(export, dir); err != nil {
		return result, err
	}
	if result.MetricsFile, err = WriteMetricsCSV(export, dir); err != nil {
		return result, err
	}

	return result, nil
}

func writeArtifact(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}
