package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	th "github.com/desertthunder/visuallab/internal/testing"
)

const testSessionID = "3f2a9c1e-5b7d-4e8f-9a0b-1c2d3e4f5a6b"

func newTestExport() *SessionExport {
	return &SessionExport{
		SessionID: testSessionID,
		File:      models.FileRef{Name: "iris.csv", Path: "/data/iris.csv", Size: 2048, MIME: "text/csv"},
		Stats: &models.DatasetStats{
			Rows:          1000,
			Columns:       4,
			MissingValues: 23,
			DataTypes:     models.DataTypes{Numeric: 3, Categorical: 1},
		},
		Metrics:   &models.ModelMetrics{Accuracy: 0.89, Precision: 0.87, Recall: 0.86, F1: 0.865},
		Trainer:   "simulated",
		CreatedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestSessionExport(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(e *SessionExport)
			wantErr error
		}{
			{name: "complete export", mutate: func(e *SessionExport) {}},
			{name: "missing session", mutate: func(e *SessionExport) { e.SessionID = "" }, wantErr: shared.ErrInvalidInput},
			{name: "missing stats", mutate: func(e *SessionExport) { e.Stats = nil }, wantErr: shared.ErrInvalidInput},
			{name: "missing metrics", mutate: func(e *SessionExport) { e.Metrics = nil }, wantErr: shared.ErrNoModel},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				export := newTestExport()
				tt.mutate(export)
				err := export.Validate()
				if tt.wantErr == nil && err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("BaseName", func(t *testing.T) {
		if got := newTestExport().BaseName(); got != "visuallab_3f2a9c1e" {
			t.Errorf("expected visuallab_3f2a9c1e, got %s", got)
		}
	})
}

func TestExporters(t *testing.T) {
	t.Run("ExportModelManifest", func(t *testing.T) {
		data, err := ExportModelManifest(newTestExport())
		if err != nil {
			t.Fatalf("ExportModelManifest failed: %v", err)
		}

		var manifest ModelManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			t.Fatalf("failed to parse manifest: %v", err)
		}

		if manifest.Format != ManifestFormat {
			t.Errorf("expected format %s, got %s", ManifestFormat, manifest.Format)
		}
		if manifest.Version != ManifestVersion {
			t.Errorf("expected version %d, got %d", ManifestVersion, manifest.Version)
		}
		if manifest.SessionID != testSessionID {
			t.Errorf("expected session %s, got %s", testSessionID, manifest.SessionID)
		}
		if manifest.Dataset.File != "iris.csv" || manifest.Dataset.Size != 2048 {
			t.Errorf("unexpected dataset: %+v", manifest.Dataset)
		}
		if manifest.Dataset.Stats.Rows != 1000 || manifest.Dataset.Stats.MissingValues != 23 {
			t.Errorf("unexpected stats: %+v", manifest.Dataset.Stats)
		}
		if manifest.Metrics.F1 != 0.865 {
			t.Errorf("expected f1 0.865, got %v", manifest.Metrics.F1)
		}
		if !manifest.CreatedAt.Equal(newTestExport().CreatedAt) {
			t.Errorf("expected created_at %v, got %v", newTestExport().CreatedAt, manifest.CreatedAt)
		}
		if strings.Contains(string(data), "/data/iris.csv") {
			t.Error("manifest should not leak the local file path")
		}
	})

	t.Run("ExportModelManifest without model", func(t *testing.T) {
		export := newTestExport()
		export.Metrics = nil
		if _, err := ExportModelManifest(export); !errors.Is(err, shared.ErrNoModel) {
			t.Errorf("expected ErrNoModel, got %v", err)
		}
	})

	t.Run("ExportMetricsCSV", func(t *testing.T) {
		data, err := ExportMetricsCSV(newTestExport().Metrics)
		if err != nil {
			t.Fatalf("ExportMetricsCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV: %v", err)
		}

		expected := [][]string{
			{"metric", "value"},
			{"Accuracy", "0.89"},
			{"Precision", "0.87"},
			{"Recall", "0.86"},
			{"F1 Score", "0.865"},
		}
		if len(records) != len(expected) {
			t.Fatalf("expected %d records, got %d", len(expected), len(records))
		}
		for i, want := range expected {
			if records[i][0] != want[0] || records[i][1] != want[1] {
				t.Errorf("record %d: expected %v, got %v", i, want, records[i])
			}
		}
	})

	t.Run("ExportMetricsCSV nil metrics", func(t *testing.T) {
		if _, err := ExportMetricsCSV(nil); !errors.Is(err, shared.ErrNoModel) {
			t.Errorf("expected ErrNoModel, got %v", err)
		}
	})

	t.Run("ExportReportMarkdown", func(t *testing.T) {
		data, err := ExportReportMarkdown(newTestExport())
		if err != nil {
			t.Fatalf("ExportReportMarkdown failed: %v", err)
		}

		content := string(data)
		for _, want := range []string{
			"# Training Report",
			"**Session**: " + testSessionID,
			"**Dataset**: iris.csv (2.0 KiB)",
			"**Trainer**: simulated",
			"**Created**: 2025-03-14T09:26:53Z",
			"- Rows: 1000",
			"- Missing Values: 23",
			"- Completeness: 99.4%",
			"- Numeric Features: 3 (75.0%)",
			"- Categorical Features: 1 (25.0%)",
			"| Accuracy | 89.0% |",
			"| F1 Score | 86.5% |",
		} {
			if !strings.Contains(content, want) {
				t.Errorf("report missing %q\n%s", want, content)
			}
		}
	})

	t.Run("RenderPreviewTable", func(t *testing.T) {
		preview := &models.DatasetPreview{
			Columns: []string{"feature1", "target"},
			Rows:    [][]string{{"1.2", "Class A"}, {"3.4", "Class B"}},
		}

		out := RenderPreviewTable(preview)
		for _, want := range []string{"feature1", "target", "1.2", "Class B"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q\n%s", want, out)
			}
		}
		if RenderPreviewTable(nil) != "" {
			t.Error("expected empty output for nil preview")
		}
	})

	t.Run("RenderMetricsTable", func(t *testing.T) {
		out := RenderMetricsTable(newTestExport().Metrics)
		if !strings.Contains(out, "Recall") || !strings.Contains(out, "86.0%") {
			t.Errorf("unexpected metrics table:\n%s", out)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteArtifacts", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "artifacts")

		result, err := WriteArtifacts(newTestExport(), dir)
		if err != nil {
			t.Fatalf("WriteArtifacts failed: %v", err)
		}

		th.AssertDirExists(t, dir)
		expected := []string{
			filepath.Join(dir, "visuallab_3f2a9c1e_model.json"),
			filepath.Join(dir, "visuallab_3f2a9c1e_report.md"),
			filepath.Join(dir, "visuallab_3f2a9c1e_metrics.csv"),
		}
		files := result.Files()
		if len(files) != len(expected) {
			t.Fatalf("expected %d files, got %v", len(expected), files)
		}
		for i, path := range expected {
			if files[i] != path {
				t.Errorf("expected %s, got %s", path, files[i])
			}
			th.AssertFileExists(t, path)
		}

		if !strings.Contains(th.MustReadFile(t, result.ReportFile), "# Training Report") {
			t.Error("report file has unexpected content")
		}
	})

	t.Run("WriteArtifacts without model", func(t *testing.T) {
		dir := t.TempDir()
		export := newTestExport()
		export.Metrics = nil

		if _, err := WriteArtifacts(export, dir); !errors.Is(err, shared.ErrNoModel) {
			t.Fatalf("expected ErrNoModel, got %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no files to be written, found %d", len(entries))
		}
	})

	t.Run("WriteModelManifest", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteModelManifest(newTestExport(), dir)
		if err != nil {
			t.Fatalf("WriteModelManifest failed: %v", err)
		}
		if filepath.Base(path) != "visuallab_3f2a9c1e_model.json" {
			t.Errorf("unexpected file name: %s", path)
		}
		if !strings.Contains(th.MustReadFile(t, path), ManifestFormat) {
			t.Error("manifest missing format tag")
		}
	})

	t.Run("WriteReport into unwritable path", func(t *testing.T) {
		blocker := th.WriteFile(t, "blocker", []byte("x"))
		if _, err := WriteReport(newTestExport(), filepath.Join(blocker, "sub")); err == nil {
			t.Error("expected error when directory cannot be created")
		}
	})
}
