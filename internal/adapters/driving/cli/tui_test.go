package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.NotEmpty(t, tuiCmd.Short)
}

func TestTUICmd_MissingServices(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, err := executeCommand(t, "tui")

	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrMissingPipelineService)
}

func TestNewTUIApp_UsesInjectedServices(t *testing.T) {
	setupTestServices(t)

	app, err := newTUIApp()

	require.NoError(t, err)
	assert.NotEmpty(t, app.SessionID())
}

func TestMCPServeCmd_MissingServices(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, err := executeCommand(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline service is required")
}

// recordingWatcher counts Run calls and blocks until cancelled.
type recordingWatcher struct {
	mu      sync.Mutex
	started int
	done    chan struct{}
}

func (w *recordingWatcher) Run(ctx context.Context) {
	w.mu.Lock()
	w.started++
	w.mu.Unlock()
	<-ctx.Done()
	close(w.done)
}

func TestStartWatcher(t *testing.T) {
	t.Run("nil watcher is a no-op", func(t *testing.T) {
		setupTestServices(t)
		startWatcher(context.Background())
	})

	t.Run("runs until cancelled", func(t *testing.T) {
		setupTestServices(t)
		w := &recordingWatcher{done: make(chan struct{})}
		promptWatcher = w

		ctx, cancel := context.WithCancel(context.Background())
		startWatcher(ctx)
		cancel()

		select {
		case <-w.done:
		case <-time.After(time.Second):
			t.Fatal("watcher did not stop")
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		assert.Equal(t, 1, w.started)
	})
}
