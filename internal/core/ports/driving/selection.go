package driving

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// SelectionService drives the interactive tag selection for a session.
type SelectionService interface {
	// Start replaces the session's selection with one built from draft.
	Start(ctx context.Context, sessionID string, draft *domain.Draft) (*domain.PendingSelection, error)

	// Get returns the session's selection or domain.ErrNoPendingSelection.
	Get(ctx context.Context, sessionID string) (*domain.PendingSelection, error)

	// Toggle flips one tag in the selection.
	Toggle(ctx context.Context, sessionID, tag string) (*domain.PendingSelection, error)

	// AddTags parses free-form input and adds each tag to the selection.
	AddTags(ctx context.Context, sessionID, input string) (*domain.PendingSelection, error)

	// SetMessageID records the front-end message showing the selection.
	SetMessageID(ctx context.Context, sessionID, messageID string) error

	// Confirm reconciles the selected tags, publishes the record and
	// removes the selection. The selection is kept if publishing fails.
	Confirm(ctx context.Context, sessionID string) (string, error)

	// Cancel discards the session's selection.
	Cancel(ctx context.Context, sessionID string) error
}
