// Package tasks runs the dataset and training stages behind the Visual Lab view, reporting progress over channels.
//
// # Backends
//
// Two interfaces decouple the view from the computation:
//
//  1. [DataSource] : Loads a preview and summary statistics for an uploaded file
//     - [MockSource] returns a fixed four-column preview and fixed statistics without reading the file
//
//  2. [Trainer] : Fits a model and returns classification metrics
//     - [SimulatedTrainer] advances progress by a fixed step at a fixed interval and returns fixed metrics
//
// # File Inspection
//
// [Inspect] turns a path into a [models.FileRef] before any backend sees it.
// Missing paths, directories, empty files, oversized files and binary content fail with [shared.ErrInvalidFile].
// In strict mode, content that is not detected as CSV fails with [shared.ErrParse].
// The extension filter is advisory; [Engine.Upload] logs a warning and continues.
//
// # Progress Reporting
//
// [ProgressUpdate] events flow over a caller-provided channel.
// Sends block until the receiver is ready or the context is done, so a slow view throttles the trainer instead of losing updates.
//
// # Cancellation
//
// Cancelling the context passed to [Engine.Train] stops the trainer at the next tick with [shared.ErrTrainingCancelled].
//
// # Implementation
//
// [Engine] binds a [DataSource], a [Trainer] and the upload rules from [shared.UploadConfig].
package tasks
