package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch a full-screen capture loop.

Paste a link, a file path or a note and press Enter. Each draft opens
in the tag picker; publish it, discard it, then capture the next one.
Messages with several links become one post per link.

Controls:
  Enter      - Prepare / Publish
  ↑/k, ↓/j   - Move through tags
  Space, x   - Toggle tag
  a          - Add tags
  p          - Preview post
  Esc        - Clear / Discard
  ?          - Toggle help
  Ctrl+C     - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the full-screen app from the injected services.
var newTUIApp = func() (*tui.App, error) {
	return tui.NewApp(tui.NewPorts(pipelineService, selectionService, tagService, publishService))
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp()
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	startWatcher(ctx)

	app.WithContext(ctx)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if out := app.Outcome(); len(out.Published) > 0 {
		cmd.Printf("Published %d post(s) this session.\n", len(out.Published))
	}
	return nil
}
