package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure pendingStore implements the interface.
var _ driven.PendingStore = (*pendingStore)(nil)

// pendingStore keeps one JSON-encoded selection per session row.
// Rows older than ttl read as absent and are removed lazily.
type pendingStore struct {
	store *Store
	ttl   time.Duration
	now   func() time.Time
}

// Get returns the session's selection or domain.ErrNotFound.
func (p *pendingStore) Get(ctx context.Context, sessionID string) (*domain.PendingSelection, error) {
	var (
		data    []byte
		savedAt int64
	)
	err := p.store.db.QueryRowContext(ctx,
		"SELECT data, saved_at FROM pending_selections WHERE session_id = ?", sessionID,
	).Scan(&data, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}

	if p.expired(savedAt) {
		if err := p.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}

	var selection domain.PendingSelection
	if err := json.Unmarshal(data, &selection); err != nil {
		return nil, fmt.Errorf("decode selection: %w", err)
	}
	return &selection, nil
}

// Save stores the selection, replacing any existing one and resetting its age.
func (p *pendingStore) Save(ctx context.Context, selection *domain.PendingSelection) error {
	if selection == nil || selection.SessionID == "" {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}

	_, err = p.store.db.ExecContext(ctx, `
		INSERT INTO pending_selections (session_id, data, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			data = excluded.data,
			saved_at = excluded.saved_at
	`, selection.SessionID, string(data), p.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// Delete removes the session's selection.
func (p *pendingStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := p.store.db.ExecContext(ctx,
		"DELETE FROM pending_selections WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}

// purgeExpired drops every row older than ttl and reports how many went.
func (p *pendingStore) purgeExpired(ctx context.Context) (int64, error) {
	if p.ttl <= 0 {
		return 0, nil
	}
	cutoff := p.now().Add(-p.ttl).UnixMilli()
	res, err := p.store.db.ExecContext(ctx,
		"DELETE FROM pending_selections WHERE saved_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge selections: %w", err)
	}
	return res.RowsAffected()
}

func (p *pendingStore) expired(savedAt int64) bool {
	return p.ttl > 0 && p.now().Sub(time.UnixMilli(savedAt)) > p.ttl
}
