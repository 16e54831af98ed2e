// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - WebExtractor: Fetches a URL into a ContentRecord
//   - FileExtractor: Reads a local PDF or image into a ContentRecord
//   - Normaliser: Transforms raw bytes into a ContentRecord
//   - NormaliserRegistry: Selects the appropriate normaliser
//   - VocabularyStore: Preset tag persistence
//   - PendingStore: Per-session tag selection state
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model. Without it, summaries and tag suggestions are empty.
//   - Publisher: Channel publishing. Without it, posts can only be previewed.
//   - AttachmentArchive: Attachment backup. Without it, attachments are only published.
//   - Metrics: Counters. Without it, degradations are only logged.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
