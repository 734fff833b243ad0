// Package workflow implements the Visual Lab session as an explicit value type with pure transitions.
//
// # Tabs
//
// The session exposes four tabs: [TabUpload], [TabProfiling], [TabModeling] and [TabDownload].
// Enablement is derived from the session:
//   - Profiling and Modeling require an uploaded file
//   - Download requires model metrics
//
// Selecting a disabled tab leaves the session unchanged.
//
// # Training
//
// Training moves through [PhaseIdle] → [PhaseTraining] → [PhaseComplete], or [PhaseFailed] when the trainer reports an error.
// [StartTraining] resets progress to zero, [ApplyProgress] only moves progress forward, and [CompleteTraining] publishes metrics once per run.
//
// # Notices
//
// Upload and training errors are kept as a single dismissible [Notice] on the session.
//
// Every transition takes a [State] and returns a new one; none performs I/O.
package workflow
