package tasks

import (
	"context"

	"github.com/desertthunder/visuallab/internal/models"
)

// MockSource is a [DataSource] that returns the same preview and statistics for every file.
//
// The file content is never read.
type MockSource struct{}

// NewMockSource creates a new MockSource.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// Name returns the source name.
func (s *MockSource) Name() string { return "mock" }

// Load returns a fresh copy of the mock preview and statistics.
func (s *MockSource) Load(ctx context.Context, file models.FileRef) (*models.DatasetPreview, *models.DatasetStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	preview := &models.DatasetPreview{
		Columns: []string{"feature1", "feature2", "feature3", "target"},
		Rows: [][]string{
			{"1.2", "3.4", "2.1", "Class A"},
			{"2.3", "1.4", "3.2", "Class B"},
			{"3.1", "2.7", "1.8", "Class A"},
		},
	}
	stats := &models.DatasetStats{
		Rows:          1000,
		Columns:       4,
		MissingValues: 23,
		DataTypes: models.DataTypes{
			Numeric:     3,
			Categorical: 1,
		},
	}
	return preview, stats, nil
}
