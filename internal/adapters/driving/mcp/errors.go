// Package mcp provides an MCP (Model Context Protocol) server adapter for kb.
// It lets AI assistants classify, extract and tag content with the same
// pipeline the CLI uses. Publishing stays with the human-facing commands.
package mcp

import "errors"

var (
	// ErrMissingPipelineService is returned when the pipeline service is not provided.
	ErrMissingPipelineService = errors.New("mcp: pipeline service is required")

	// ErrMissingTagService is returned when the tag service is not provided.
	ErrMissingTagService = errors.New("mcp: tag service is required")
)
