// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks a dataset through the four workflow tabs:
//  1. [workflow.TabUpload] : Enter a dataset path and upload it
//  2. [workflow.TabProfiling] : Summary cards, preview table, data types and completeness
//  3. [workflow.TabModeling] : Start training and monitor real-time progress
//  4. [workflow.TabDownload] : Save the model manifest and training report
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the [Msg] union type.
// Session state lives in a [workflow.State] value and only changes through workflow transitions.
// Progress updates flow through a channel from the [tasks.Engine]; each training run carries an ID so that updates from a cancelled run are dropped.
//
// Tabs are selected with 1-4 or tab/shift+tab; disabled tabs are dimmed and cannot be selected.
// Contextual help is displayed via charmbracelet/bubbles/help.
package ui
