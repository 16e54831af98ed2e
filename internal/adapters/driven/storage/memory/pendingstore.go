package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure PendingStore implements the interface.
var _ driven.PendingStore = (*PendingStore)(nil)

// PendingStore is an in-memory implementation of driven.PendingStore.
// Selections older than the TTL are treated as absent.
type PendingStore struct {
	mu         sync.RWMutex
	selections map[string]pendingEntry
	ttl        time.Duration
	now        func() time.Time
}

type pendingEntry struct {
	selection domain.PendingSelection
	savedAt   time.Time
}

// NewPendingStore creates a new in-memory pending store.
// A zero ttl keeps selections until they are deleted.
func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		selections: make(map[string]pendingEntry),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the session's selection.
func (s *PendingStore) Get(_ context.Context, sessionID string) (*domain.PendingSelection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.selections[sessionID]
	if !ok || s.expired(entry) {
		return nil, domain.ErrNotFound
	}
	sel := entry.selection
	sel.Selected = domain.NewTagSet(entry.selection.Selected.Slice()...)
	return &sel, nil
}

// Save stores the selection, replacing any existing one for the session.
func (s *PendingStore) Save(_ context.Context, selection *domain.PendingSelection) error {
	if selection == nil || selection.SessionID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := *selection
	sel.Selected = domain.NewTagSet(selection.Selected.Slice()...)
	s.selections[selection.SessionID] = pendingEntry{selection: sel, savedAt: s.now()}
	return nil
}

// Delete removes the session's selection.
func (s *PendingStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, sessionID)
	return nil
}

func (s *PendingStore) expired(entry pendingEntry) bool {
	return s.ttl > 0 && s.now().Sub(entry.savedAt) > s.ttl
}
