// Package driving defines what the CLI, the TUI and the MCP server call
// into: the capture pipeline, tag selection, publishing and settings.
//
// Implementations live in internal/core/services.
package driving
