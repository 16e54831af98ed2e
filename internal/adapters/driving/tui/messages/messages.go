// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// InputSubmitted is sent when the user submits raw input for capture.
type InputSubmitted struct {
	Raw string
}

// DraftsPrepared carries the pipeline output for one submitted input.
type DraftsPrepared struct {
	Drafts []*domain.Draft
	Err    error
}

// PresetsLoaded carries the tag vocabulary.
type PresetsLoaded struct {
	Presets []string
	Err     error
}

// SelectionUpdated carries the pending selection after a change.
type SelectionUpdated struct {
	Selection *domain.PendingSelection
	Err       error
}

// Published signals that a confirmed selection was sent.
type Published struct {
	URL string
	Err error
}

// SelectionChosen signals that the user finished picking tags without
// publishing from the picker.
type SelectionChosen struct {
	Selection *domain.PendingSelection
}

// Cancelled signals that a pending selection was discarded.
type Cancelled struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCapture is the input view.
	ViewCapture ViewType = iota
	// ViewPicker is the tag picker for a pending selection.
	ViewPicker
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCapture:
		return "capture"
	case ViewPicker:
		return "picker"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
