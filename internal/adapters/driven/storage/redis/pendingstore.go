// Package redis provides Redis-backed implementations of driven ports.
// Selections survive restarts and can be shared by several front-ends.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure PendingStore implements the interface.
var _ driven.PendingStore = (*PendingStore)(nil)

// pendingPrefix namespaces selection keys.
const pendingPrefix = "kb:pending:"

// PendingStore keeps one JSON-encoded selection per session key.
// Expiry is left to Redis via the key TTL.
type PendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPendingStore creates a store on client. A zero ttl keeps
// selections until they are deleted.
func NewPendingStore(client *redis.Client, ttl time.Duration) *PendingStore {
	return &PendingStore{client: client, ttl: ttl}
}

// Get returns the session's selection or domain.ErrNotFound.
func (s *PendingStore) Get(ctx context.Context, sessionID string) (*domain.PendingSelection, error) {
	data, err := s.client.Get(ctx, pendingPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}

	var selection domain.PendingSelection
	if err := json.Unmarshal(data, &selection); err != nil {
		return nil, fmt.Errorf("decode selection: %w", err)
	}
	return &selection, nil
}

// Save stores the selection, replacing any existing one and resetting its TTL.
func (s *PendingStore) Save(ctx context.Context, selection *domain.PendingSelection) error {
	if selection == nil || selection.SessionID == "" {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := s.client.Set(ctx, pendingPrefix+selection.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// Delete removes the session's selection.
func (s *PendingStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, pendingPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}

// Ping checks the connection to Redis.
func (s *PendingStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (s *PendingStore) Close() error {
	return s.client.Close()
}
