// Package status renders the one-line footer shared by the capture and
// picker views.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/styles"
)

// State is the pipeline phase the footer reports.
type State string

const (
	StateReady      State = "ready"
	StatePreparing  State = "preparing"
	StatePicking    State = "picking"
	StatePublishing State = "publishing"
	StatePublished  State = "published"
	StateError      State = "error"
)

// Bar shows the phase on the left and key hints on the right.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	selected int
	offered  int
	width    int
}

// NewBar creates a bar in StateReady. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// Show switches to state with an optional message, such as a URL or an error.
func (b *Bar) Show(state State, message string) {
	b.state = state
	b.message = message
}

// Fail shows err in StateError.
func (b *Bar) Fail(err error) {
	b.Show(StateError, err.Error())
}

// Reset returns to StateReady with no message or counts.
func (b *Bar) Reset() {
	*b = Bar{styles: b.styles, keymap: b.keymap, state: StateReady, width: b.width}
}

// SetCounts sets the "selected/offered" tag counts shown while picking.
func (b *Bar) SetCounts(selected, offered int) {
	b.selected, b.offered = selected, offered
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

func (b *Bar) State() State    { return b.state }
func (b *Bar) Message() string { return b.message }

// View renders the footer padded to the bar width.
func (b *Bar) View() string {
	left, right := b.phase(), b.hints()
	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) phase() string {
	switch b.state {
	case StatePreparing:
		return b.styles.Muted.Render("Extracting and summarising...")
	case StatePublishing:
		return b.styles.Muted.Render("Publishing...")
	case StatePublished:
		return b.styles.Success.Render(joinNonEmpty("Published", b.message, " "))
	case StateError:
		return b.styles.Error.Render(joinNonEmpty("Error", b.message, ": "))
	case StatePicking:
		label := fmt.Sprintf("%d/%d tags selected", b.selected, b.offered)
		return b.styles.Normal.Render(joinNonEmpty(label, b.message, " · "))
	}
	if b.message != "" {
		return b.styles.Muted.Render(b.message)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) hints() string {
	bindings := b.keymap.ShortHelp()
	if b.state == StatePicking {
		bindings = b.keymap.PickerHelp()
	}
	hints := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

func joinNonEmpty(head, tail, sep string) string {
	if tail == "" {
		return head
	}
	return head + sep + tail
}
