// Package models defines the data entities passed between the Visual Lab workflow stages.
//
// The package contains plain value types only:
//   - [FileRef] : A dataset file selected for upload
//   - [DatasetPreview] : Column names and the first rows of a dataset
//   - [DatasetStats] : Row, column, missing value and data type counts
//   - [ModelMetrics] : Classification scores produced by training
//
// Each type carries a Validate method enforcing its invariants, so backends and the state machine can reject malformed results before they reach the view.
package models
