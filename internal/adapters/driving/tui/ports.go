// Package tui provides an interactive terminal user interface for kb.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pipeline extracts, summarises and suggests tags for captured input.
	Pipeline driving.PipelineService

	// Selection holds the pending tag choice for the terminal session.
	Selection driving.SelectionService

	// Tags provides the preset vocabulary.
	Tags driving.TagService

	// Publish renders post previews.
	Publish driving.PublishService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	pipeline driving.PipelineService,
	selection driving.SelectionService,
	tags driving.TagService,
	publish driving.PublishService,
) *Ports {
	return &Ports{
		Pipeline:  pipeline,
		Selection: selection,
		Tags:      tags,
		Publish:   publish,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	if p.Selection == nil {
		return ErrMissingSelectionService
	}
	if p.Tags == nil {
		return ErrMissingTagService
	}
	if p.Publish == nil {
		return ErrMissingPublishService
	}
	return nil
}

// ValidatePicker checks the ports a standalone picker needs.
func (p *Ports) ValidatePicker() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Selection == nil {
		return ErrMissingSelectionService
	}
	if p.Tags == nil {
		return ErrMissingTagService
	}
	return nil
}
