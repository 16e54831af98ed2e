package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// PromptWatcher reloads a prompt store whenever a template in its
// directory is written, created, removed or renamed.
type PromptWatcher struct {
	store   driven.PromptStore
	dir     string
	watcher *fsnotify.Watcher
}

// NewPromptWatcher starts watching dir. The directory must exist.
func NewPromptWatcher(store driven.PromptStore, dir string) (*PromptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &PromptWatcher{store: store, dir: dir, watcher: w}, nil
}

// Run reloads the store on relevant events until ctx is cancelled.
// It closes the underlying watcher before returning.
func (w *PromptWatcher) Run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.handleEvent(event) {
				logger.Debug("Prompt %s changed, reloading", filepath.Base(event.Name))
				w.store.Reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Prompt watcher: %v", err)
		}
	}
}

// handleEvent reports whether event touches a prompt template.
func (w *PromptWatcher) handleEvent(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".txt" || strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
