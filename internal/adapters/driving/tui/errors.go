package tui

import "errors"

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("tui: pipeline service is required")

// ErrMissingSelectionService is returned when the selection service is not provided.
var ErrMissingSelectionService = errors.New("tui: selection service is required")

// ErrMissingTagService is returned when the tag service is not provided.
var ErrMissingTagService = errors.New("tui: tag service is required")

// ErrMissingPublishService is returned when the publish service is not provided.
var ErrMissingPublishService = errors.New("tui: publish service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
