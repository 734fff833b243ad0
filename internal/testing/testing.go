// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/desertthunder/visuallab/internal/tasks"
)

// MockSource is a test double for [tasks.DataSource]
type MockSource struct {
	Preview *models.DatasetPreview
	Stats   *models.DatasetStats
	Err     error
	Calls   int
}

func (m *MockSource) Name() string { return "mock-source" }

func (m *MockSource) Load(ctx context.Context, file models.FileRef) (*models.DatasetPreview, *models.DatasetStats, error) {
	m.Calls++
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Preview, m.Stats, nil
}

// MockTrainer is a test double for [tasks.Trainer]; it reports Percents in order, then returns Metrics or Err.
type MockTrainer struct {
	Percents []int
	Metrics  *models.ModelMetrics
	Err      error
	Calls    int
}

func (m *MockTrainer) Name() string { return "mock-trainer" }

func (m *MockTrainer) Train(ctx context.Context, stats *models.DatasetStats, progress chan<- tasks.ProgressUpdate) (*models.ModelMetrics, error) {
	m.Calls++
	for i, p := range m.Percents {
		update := tasks.ProgressUpdate{Phase: tasks.TrainModel, Step: i + 1, Total: len(m.Percents), Percent: p}
		select {
		case progress <- update:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Metrics, nil
}

// BlockingTrainer is a [tasks.Trainer] that reports Started and then waits for ctx to be cancelled.
type BlockingTrainer struct {
	Started chan struct{}
}

func NewBlockingTrainer() *BlockingTrainer {
	return &BlockingTrainer{Started: make(chan struct{})}
}

func (b *BlockingTrainer) Name() string { return "blocking-trainer" }

func (b *BlockingTrainer) Train(ctx context.Context, stats *models.DatasetStats, progress chan<- tasks.ProgressUpdate) (*models.ModelMetrics, error) {
	close(b.Started)
	<-ctx.Done()
	return nil, fmt.Errorf("%w: %v", shared.ErrTrainingCancelled, ctx.Err())
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// WriteFile writes content to name inside a fresh temporary directory and returns the path.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// WriteCSV writes a small, well-formed CSV dataset and returns its path.
func WriteCSV(t *testing.T, name string) string {
	t.Helper()
	return WriteFile(t, name, []byte("feature1,feature2,feature3,target\n1.2,3.4,2.1,Class A\n2.3,1.4,3.2,Class B\n3.1,2.7,1.8,Class A\n"))
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
