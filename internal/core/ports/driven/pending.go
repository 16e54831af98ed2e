package driven

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// PendingStore keeps at most one PendingSelection per session.
type PendingStore interface {
	// Get returns the session's selection or domain.ErrNotFound.
	Get(ctx context.Context, sessionID string) (*domain.PendingSelection, error)

	// Save stores the selection, replacing any existing one for the session.
	Save(ctx context.Context, selection *domain.PendingSelection) error

	// Delete removes the session's selection. Deleting nothing is not an error.
	Delete(ctx context.Context, sessionID string) error
}
