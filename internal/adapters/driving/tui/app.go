package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/views/capture"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// SessionPrefix marks pending selections owned by a terminal session.
const SessionPrefix = "tui:"

// Outcome summarises what happened while the app ran.
type Outcome struct {
	// Published lists the post URLs sent, in order.
	Published []string

	// Chosen is the selection the user accepted without publishing.
	Chosen *domain.PendingSelection

	// Cancelled is true when the last selection was discarded.
	Cancelled bool
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// captureView takes input and runs the pipeline.
	captureView *capture.View

	// pickerView edits the pending selection.
	pickerView *picker.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when help closes.
	previousView messages.ViewType

	// sessionID keys the pending selection.
	sessionID string

	// standalone apps edit one existing selection and exit.
	standalone bool

	// queue holds drafts waiting for the picker when one input yields several.
	queue []*domain.Draft

	// outcome records published and discarded selections.
	outcome Outcome

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the full capture application.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		captureView: capture.NewView(s, km, ports.Pipeline),
		pickerView:  picker.NewView(s, km, ports.Selection, ports.Publish, true),
		currentView: messages.ViewCapture,
		sessionID:   SessionPrefix + uuid.NewString(),
	}, nil
}

// NewPickerApp creates an app that edits the existing selection for
// sessionID and exits on confirm or cancel. When publishes is false,
// confirming returns the selection in Outcome.Chosen instead.
func NewPickerApp(ports *Ports, sessionID string, publishes bool) (*App, error) {
	if err := ports.ValidatePicker(); err != nil {
		return nil, fmt.Errorf("creating picker: %w", err)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("creating picker: %w", domain.ErrInvalidInput)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		captureView: capture.NewView(s, km, ports.Pipeline),
		pickerView:  picker.NewView(s, km, ports.Selection, ports.Publish, publishes),
		currentView: messages.ViewPicker,
		sessionID:   sessionID,
		standalone:  true,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.captureView.WithContext(ctx)
	a.pickerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	if a.standalone {
		return tea.Batch(a.loadPresets(), a.loadSelection())
	}
	return tea.Batch(
		tea.SetWindowTitle("kb"),
		a.loadPresets(),
		a.captureView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewCapture:
			a.captureView, cmd = a.captureView.Update(msg)
		case messages.ViewPicker:
			a.pickerView, cmd = a.pickerView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = a.previousView
			}
		}
		return a, cmd

	case messages.PresetsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.pickerView, cmd = a.pickerView.Update(msg)
		return a, cmd

	case messages.DraftsPrepared:
		a.captureView, cmd = a.captureView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.queue = append(a.queue, msg.Drafts...)
		return a, a.startNext()

	case messages.SelectionUpdated:
		if msg.Err != nil && a.currentView == messages.ViewCapture {
			// The draft could not be saved; move on to the next one.
			a.err = msg.Err
			a.captureView.SetError(msg.Err)
			if len(a.queue) > 0 {
				return a, a.startNext()
			}
			return a, nil
		}
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.pickerView, cmd = a.pickerView.Update(msg)
		if msg.Err == nil && msg.Selection != nil {
			a.currentView = messages.ViewPicker
		}
		return a, cmd

	case messages.Published:
		if msg.Err != nil {
			a.err = msg.Err
			a.pickerView, cmd = a.pickerView.Update(msg)
			return a, cmd
		}
		a.err = nil
		a.outcome.Published = append(a.outcome.Published, msg.URL)
		a.outcome.Cancelled = false
		if a.standalone {
			return a, tea.Quit
		}
		a.captureView.AddPublished(msg.URL)
		// Reconcile may have grown the vocabulary.
		return a, tea.Batch(a.loadPresets(), a.startNext())

	case messages.Cancelled:
		if msg.Err != nil {
			a.err = msg.Err
			a.pickerView, cmd = a.pickerView.Update(msg)
			return a, cmd
		}
		a.outcome.Cancelled = true
		if a.standalone {
			return a, tea.Quit
		}
		a.captureView.SetMessage("Discarded")
		return a, a.startNext()

	case messages.SelectionChosen:
		a.outcome.Chosen = msg.Selection
		return a, tea.Quit

	case messages.ViewChanged:
		if msg.View != a.currentView {
			a.previousView = a.currentView
			a.currentView = msg.View
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewCapture:
			a.captureView, cmd = a.captureView.Update(msg)
		case messages.ViewPicker:
			a.pickerView, cmd = a.pickerView.Update(msg)
		case messages.ViewHelp:
			// Help view doesn't show errors
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the active input.
	if a.currentView == messages.ViewCapture {
		a.captureView, cmd = a.captureView.Update(msg)
	}
	return a, cmd
}

// startNext opens the picker for the next queued draft, or returns to capture.
func (a *App) startNext() tea.Cmd {
	a.currentView = messages.ViewCapture
	if len(a.queue) == 0 {
		return a.captureView.Focus()
	}

	draft := a.queue[0]
	a.queue = a.queue[1:]
	sessionID := a.sessionID
	return func() tea.Msg {
		sel, err := a.ports.Selection.Start(a.ctx, sessionID, draft)
		return messages.SelectionUpdated{Selection: sel, Err: err}
	}
}

func (a *App) loadPresets() tea.Cmd {
	return func() tea.Msg {
		presets, err := a.ports.Tags.Presets(a.ctx)
		return messages.PresetsLoaded{Presets: presets, Err: err}
	}
}

func (a *App) loadSelection() tea.Cmd {
	sessionID := a.sessionID
	return func() tea.Msg {
		sel, err := a.ports.Selection.Get(a.ctx, sessionID)
		return messages.SelectionUpdated{Selection: sel, Err: err}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPicker:
		view := a.pickerView.View()
		if n := len(a.queue); n > 0 {
			view += "\n" + a.styles.Muted.Render(fmt.Sprintf("%d more waiting", n))
		}
		return view
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.captureView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Capture:
  (type)      Paste a URL, a file path or a note
  enter       Extract, summarise and suggest tags
  esc         Clear input
  ctrl+c      Quit

Tags:
  j/k, ↑/↓    Navigate tags
  space, x    Toggle tag
  a, +        Add your own tags (#tag or comma separated)
  p           Preview the post
  enter       Publish with the selected tags
  esc, q      Discard

Suggested presets are marked with *, free-form tags with +.

[esc] back`
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	opts := []tea.ProgramOption{tea.WithContext(a.ctx)}
	if !a.standalone {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(a, opts...)
	_, err := p.Run()
	return err
}

// Outcome returns what happened while the app ran.
func (a *App) Outcome() Outcome {
	return a.outcome
}

// SessionID returns the session key for pending selections.
func (a *App) SessionID() string {
	return a.sessionID
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Queued returns the number of drafts waiting for the picker.
func (a *App) Queued() int {
	return len(a.queue)
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.captureView.SetDimensions(width, height)
	a.pickerView.SetDimensions(width, height)
}
