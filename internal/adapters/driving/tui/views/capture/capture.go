// Package capture provides the input view where content enters the pipeline.
package capture

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
)

// ErrNoPipelineService indicates that no pipeline service was provided.
var ErrNoPipelineService = errors.New("pipeline service is required")

// View takes a URL, file path or note and runs it through the pipeline.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	statusbar *status.Bar

	pipeline driving.PipelineService
	ctx      context.Context

	published []string
	width     int
	height    int
	ready     bool
	busy      bool
	err       error
}

// NewView creates a new capture view.
func NewView(s *styles.Styles, km *keymap.KeyMap, pipeline driving.PipelineService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewCaptureInput(s),
		statusbar: status.NewBar(s, km),
		pipeline:  pipeline,
		ctx:       context.Background(),
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
	return v.input.Init()
}

// Update handles messages for the capture view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DraftsPrepared:
		v.busy = false
		if msg.Err != nil {
			v.SetError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.input.Reset()
		v.statusbar.Reset()
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.SetError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.busy {
		return v, nil
	}

	if msg.Type == tea.KeyEsc {
		v.input.Reset()
		v.err = nil
		v.statusbar.Reset()
		return v, nil
	}

	if keymap.Matches(msg.String(), v.keymap.Help) && v.input.Value() == "" {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	}

	if msg.Type == tea.KeyEnter {
		raw := v.input.Value()
		if strings.TrimSpace(raw) == "" {
			return v, nil
		}
		v.busy = true
		v.err = nil
		v.statusbar.Show(status.StatePreparing, "")
		return v, v.prepare(raw)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// prepare runs the pipeline, one draft per link when raw holds several.
func (v *View) prepare(raw string) tea.Cmd {
	return func() tea.Msg {
		if v.pipeline == nil {
			return messages.ErrorOccurred{Err: ErrNoPipelineService}
		}
		drafts, err := v.pipeline.PrepareEach(v.ctx, raw)
		return messages.DraftsPrepared{Drafts: drafts, Err: err}
	}
}

// View renders the capture view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("kb"),
		v.styles.Muted.Render("Capture links, files and notes to your channel"),
		"",
		v.input.View(),
		"",
	)

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if len(v.published) > 0 {
		sections = append(sections, v.styles.Subtitle.Render("Published"))
		for _, url := range v.published {
			sections = append(sections, v.styles.Success.Render("  "+url))
		}
		sections = append(sections, "")
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetError shows err in the view and the status bar.
func (v *View) SetError(err error) {
	v.err = err
	v.statusbar.Fail(err)
}

// AddPublished records a published post URL.
func (v *View) AddPublished(url string) {
	v.published = append(v.published, url)
	v.statusbar.Show(status.StatePublished, url)
}

// SetMessage shows a neutral message in the status bar.
func (v *View) SetMessage(message string) {
	v.statusbar.Show(status.StateReady, message)
}

// Published returns the URLs published in this session.
func (v *View) Published() []string {
	return v.published
}

// Value returns the current input.
func (v *View) Value() string {
	return v.input.Value()
}

// SetValue sets the current input.
func (v *View) SetValue(value string) {
	v.input.SetValue(value)
}

// Busy reports whether a pipeline run is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}

// Focus focuses the input.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}
