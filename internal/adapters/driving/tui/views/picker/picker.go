// Package picker provides the tag picker for a pending selection.
package picker

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
)

// ErrNoSelection indicates the picker has no pending selection loaded.
var ErrNoSelection = errors.New("no selection loaded")

// View lets the user toggle suggested tags, add their own, and confirm.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.TagList
	tagInput  *input.Field
	statusbar *status.Bar

	selection driving.SelectionService
	publish   driving.PublishService
	ctx       context.Context

	presets   []string
	current   *domain.PendingSelection
	publishes bool

	width   int
	height  int
	ready   bool
	adding  bool
	preview bool
	busy    bool
	err     error
}

// NewView creates a picker. When publishes is false, confirming emits
// messages.SelectionChosen instead of publishing.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	selection driving.SelectionService,
	publish driving.PublishService,
	publishes bool,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	tagInput := input.NewTagInput(s)
	tagInput.Blur()

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewTagList(s),
		tagInput:  tagInput,
		statusbar: status.NewBar(s, km),
		selection: selection,
		publish:   publish,
		ctx:       context.Background(),
		publishes: publishes,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PresetsLoaded:
		if msg.Err == nil {
			v.SetPresets(msg.Presets)
		}
		return v, nil

	case messages.SelectionUpdated:
		v.busy = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.SetSelection(msg.Selection)
		return v, nil

	case messages.Published:
		v.busy = false
		if msg.Err != nil {
			v.setError(msg.Err)
		}
		return v, nil

	case messages.Cancelled:
		v.busy = false
		if msg.Err != nil {
			v.setError(msg.Err)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.setError(msg.Err)
		return v, nil
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.busy {
		return v, nil
	}
	if v.adding {
		return v.handleTagInput(msg)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up), keymap.Matches(key, v.keymap.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil

	case keymap.Matches(key, v.keymap.Toggle):
		item := v.list.Current()
		if item == nil || v.current == nil {
			return v, nil
		}
		return v, v.toggle(item.Tag)

	case keymap.Matches(key, v.keymap.AddTag):
		v.adding = true
		v.tagInput.Reset()
		return v, v.tagInput.Focus()

	case keymap.Matches(key, v.keymap.Preview):
		v.preview = !v.preview
		return v, nil

	case keymap.Matches(key, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}

	case keymap.Matches(key, v.keymap.Confirm):
		if v.current == nil {
			return v, nil
		}
		v.busy = true
		if !v.publishes {
			selection := v.current
			return v, func() tea.Msg { return messages.SelectionChosen{Selection: selection} }
		}
		v.statusbar.Show(status.StatePublishing, "")
		return v, v.confirm()

	case keymap.Matches(key, v.keymap.Cancel):
		v.busy = true
		return v, v.cancel()
	}
	return v, nil
}

// handleTagInput routes keys to the free-form tag field.
func (v *View) handleTagInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.adding = false
		v.tagInput.Blur()
		return v, nil
	case tea.KeyEnter:
		raw := v.tagInput.Value()
		v.adding = false
		v.tagInput.Blur()
		v.tagInput.Reset()
		if raw == "" || v.current == nil {
			return v, nil
		}
		return v, v.addTags(raw)
	}

	var cmd tea.Cmd
	v.tagInput, cmd = v.tagInput.Update(msg)
	return v, cmd
}

func (v *View) toggle(tag string) tea.Cmd {
	sessionID := v.current.SessionID
	return func() tea.Msg {
		sel, err := v.selection.Toggle(v.ctx, sessionID, tag)
		return messages.SelectionUpdated{Selection: sel, Err: err}
	}
}

func (v *View) addTags(raw string) tea.Cmd {
	sessionID := v.current.SessionID
	return func() tea.Msg {
		sel, err := v.selection.AddTags(v.ctx, sessionID, raw)
		return messages.SelectionUpdated{Selection: sel, Err: err}
	}
}

func (v *View) confirm() tea.Cmd {
	sessionID := v.current.SessionID
	return func() tea.Msg {
		url, err := v.selection.Confirm(v.ctx, sessionID)
		return messages.Published{URL: url, Err: err}
	}
}

func (v *View) cancel() tea.Cmd {
	if v.current == nil {
		return func() tea.Msg { return messages.Cancelled{} }
	}
	sessionID := v.current.SessionID
	return func() tea.Msg {
		return messages.Cancelled{Err: v.selection.Cancel(v.ctx, sessionID)}
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.Fail(err)
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.current == nil || v.current.Record == nil {
		return v.styles.Muted.Render(ErrNoSelection.Error())
	}

	record := v.current.Record
	sections := make([]string, 0, 12)
	sections = append(sections,
		v.styles.Title.Render(record.Title),
		v.styles.KindBadge(record.Kind())+" "+v.styles.Muted.Render(record.Source),
		"",
	)
	if record.Summary != "" {
		sections = append(sections, v.styles.Normal.Width(v.width-2).Render(record.Summary), "")
	}

	if v.preview && v.publish != nil {
		sections = append(sections, v.styles.Preview.Width(v.width-4).Render(v.publish.Preview(v.previewRecord())), "")
	} else {
		sections = append(sections, v.list.View(), "")
	}

	if v.adding {
		sections = append(sections, v.tagInput.View(), "")
	}

	v.statusbar.SetCounts(v.current.Selected.Len(), v.list.Count())
	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// previewRecord returns a copy of the record carrying the current selection.
func (v *View) previewRecord() *domain.ContentRecord {
	record := *v.current.Record
	record.Tags = domain.NewTagSet(v.current.Selected.Slice()...)
	return &record
}

// SetPresets sets the vocabulary shown alongside the suggestions.
func (v *View) SetPresets(presets []string) {
	v.presets = presets
	v.list.SetItems(list.BuildItems(v.presets, v.current))
}

// SetSelection shows sel and resets transient state.
func (v *View) SetSelection(sel *domain.PendingSelection) {
	if v.current == nil || sel == nil || v.current.SessionID != sel.SessionID || v.current.CreatedAt != sel.CreatedAt {
		v.list.SetSelected(0)
		v.preview = false
	}
	v.current = sel
	v.err = nil
	v.busy = false
	v.list.SetItems(list.BuildItems(v.presets, sel))
	v.statusbar.Reset()
	v.statusbar.Show(status.StatePicking, "")
}

// Selection returns the selection being edited.
func (v *View) Selection() *domain.PendingSelection {
	return v.current
}

// Adding reports whether the tag input is open.
func (v *View) Adding() bool {
	return v.adding
}

// Previewing reports whether the post preview is shown.
func (v *View) Previewing() bool {
	return v.preview
}

// Busy reports whether a service call is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.tagInput.SetWidth(width)
	v.statusbar.SetWidth(width)
	// Header, summary, input and status take roughly ten lines.
	v.list.SetDimensions(width, height-10)
}
