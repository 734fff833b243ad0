// package models defines the data model for the Visual Lab workflow
package models

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// FileRef identifies a dataset selected by the user.
type FileRef struct {
	Name string `json:"name"` // Base name shown in the view
	Path string `json:"path"` // Absolute path
	Size int64  `json:"size"` // Size in bytes
	MIME string `json:"mime"` // Detected content type
}

// NewFileRef builds a [FileRef] for path, deriving the display name.
func NewFileRef(path string, size int64, mime string) FileRef {
	return FileRef{Name: filepath.Base(path), Path: path, Size: size, MIME: mime}
}

// IsZero reports whether no file was selected.
func (f FileRef) IsZero() bool {
	return f.Path == "" && f.Name == ""
}

// Ext returns the lower-cased file extension including the dot.
func (f FileRef) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// DatasetPreview holds ordered column names and the first rows of a dataset.
type DatasetPreview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Validate checks that every row has exactly one cell per column.
func (p *DatasetPreview) Validate() error {
	if len(p.Columns) == 0 {
		return fmt.Errorf("preview has no columns")
	}
	for i, row := range p.Rows {
		if len(row) != len(p.Columns) {
			return fmt.Errorf("preview row %d has %d cells, want %d", i, len(row), len(p.Columns))
		}
	}
	return nil
}

// DataTypes breaks down column counts by kind.
type DataTypes struct {
	Numeric     int `json:"numeric"`
	Categorical int `json:"categorical"`
}

// DatasetStats summarizes a dataset.
type DatasetStats struct {
	Rows          int       `json:"rows"`
	Columns       int       `json:"columns"`
	MissingValues int       `json:"missing_values"`
	DataTypes     DataTypes `json:"data_types"`
}

// Validate checks non-negative counts and that numeric + categorical = columns.
func (s *DatasetStats) Validate() error {
	if s.Rows < 0 || s.Columns < 0 || s.MissingValues < 0 {
		return fmt.Errorf("stats counts must not be negative")
	}
	if s.DataTypes.Numeric < 0 || s.DataTypes.Categorical < 0 {
		return fmt.Errorf("data type counts must not be negative")
	}
	if s.DataTypes.Numeric+s.DataTypes.Categorical != s.Columns {
		return fmt.Errorf("numeric (%d) + categorical (%d) != columns (%d)", s.DataTypes.Numeric, s.DataTypes.Categorical, s.Columns)
	}
	if s.MissingValues > s.Rows*s.Columns {
		return fmt.Errorf("missing values (%d) exceed cell count (%d)", s.MissingValues, s.Rows*s.Columns)
	}
	return nil
}

// Completeness returns the fraction of non-missing cells.
func (s *DatasetStats) Completeness() float64 {
	cells := s.Rows * s.Columns
	if cells == 0 {
		return 0
	}
	return 1 - float64(s.MissingValues)/float64(cells)
}

// NumericShare returns the fraction of columns that are numeric.
func (s *DatasetStats) NumericShare() float64 {
	if s.Columns == 0 {
		return 0
	}
	return float64(s.DataTypes.Numeric) / float64(s.Columns)
}

// CategoricalShare returns the fraction of columns that are categorical.
func (s *DatasetStats) CategoricalShare() float64 {
	if s.Columns == 0 {
		return 0
	}
	return float64(s.DataTypes.Categorical) / float64(s.Columns)
}

// ModelMetrics holds classification scores, each a fraction in [0,1].
type ModelMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Metric is a named score, used for ordered rendering.
type Metric struct {
	Label string
	Value float64
}

// List returns the metrics in display order.
func (m *ModelMetrics) List() []Metric {
	return []Metric{
		{Label: "Accuracy", Value: m.Accuracy},
		{Label: "Precision", Value: m.Precision},
		{Label: "Recall", Value: m.Recall},
		{Label: "F1 Score", Value: m.F1},
	}
}

// Validate checks that every score lies in [0,1].
func (m *ModelMetrics) Validate() error {
	for _, metric := range m.List() {
		if math.IsNaN(metric.Value) || metric.Value < 0 || metric.Value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", metric.Label, metric.Value)
		}
	}
	return nil
}
