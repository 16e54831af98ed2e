package mcp

import (
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Classify routes raw input. Optional; the classify tool is omitted without it.
	Classify driving.ClassifyService

	// Pipeline extracts and prepares drafts.
	Pipeline driving.PipelineService

	// Tags serves the preset vocabulary.
	Tags driving.TagService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	if p.Tags == nil {
		return ErrMissingTagService
	}
	return nil
}
