// Package services implements the capture-to-channel workflow.
//
// PipelineService turns an input into a ContentRecord, SummaryService and
// TagService fill in the bilingual summary and tag suggestions, and
// PublishService formats the post and hands it to the channel. Model
// failures degrade to empty results; only publishing errors stop a run.
//
// Services depend only on ports; adapters are injected by cmd/kb.
package services
