package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure SelectionService implements the interface.
var _ driving.SelectionService = (*SelectionService)(nil)

// SelectionService keeps one tag selection per session until it is
// confirmed or cancelled.
type SelectionService struct {
	store   driven.PendingStore
	tags    driving.TagService
	publish driving.PublishService
	now     func() time.Time
}

// NewSelectionService creates a selection service.
func NewSelectionService(
	store driven.PendingStore,
	tags driving.TagService,
	publish driving.PublishService,
) *SelectionService {
	return &SelectionService{
		store:   store,
		tags:    tags,
		publish: publish,
		now:     time.Now,
	}
}

// Start replaces the session's selection with one built from draft.
func (s *SelectionService) Start(
	ctx context.Context,
	sessionID string,
	draft *domain.Draft,
) (*domain.PendingSelection, error) {
	if sessionID == "" || draft == nil || draft.Record == nil {
		return nil, fmt.Errorf("%w: session and draft are required", domain.ErrInvalidInput)
	}
	selection := domain.NewPendingSelection(sessionID, draft, s.now())
	if err := s.store.Save(ctx, selection); err != nil {
		return nil, fmt.Errorf("save selection: %w", err)
	}
	return selection, nil
}

// Get returns the session's selection or domain.ErrNoPendingSelection.
func (s *SelectionService) Get(ctx context.Context, sessionID string) (*domain.PendingSelection, error) {
	selection, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoPendingSelection
	}
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}
	return selection, nil
}

// Toggle flips one tag in the selection.
func (s *SelectionService) Toggle(ctx context.Context, sessionID, tag string) (*domain.PendingSelection, error) {
	return s.update(ctx, sessionID, func(p *domain.PendingSelection) {
		p.Selected.Toggle(tag)
	})
}

// AddTags parses free-form input and adds each tag to the selection.
func (s *SelectionService) AddTags(ctx context.Context, sessionID, input string) (*domain.PendingSelection, error) {
	tags := s.tags.ParseUserInput(input)
	return s.update(ctx, sessionID, func(p *domain.PendingSelection) {
		for _, t := range tags {
			p.Selected.Add(t)
		}
	})
}

// SetMessageID records the front-end message showing the selection.
func (s *SelectionService) SetMessageID(ctx context.Context, sessionID, messageID string) error {
	_, err := s.update(ctx, sessionID, func(p *domain.PendingSelection) {
		p.MessageID = messageID
	})
	return err
}

// Confirm reconciles the selected tags, publishes the record and removes
// the selection. The selection is kept when publishing fails so the user
// can retry.
func (s *SelectionService) Confirm(ctx context.Context, sessionID string) (string, error) {
	selection, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	tags, err := s.tags.Reconcile(ctx, selection.Selected.Slice())
	if err != nil {
		return "", fmt.Errorf("reconcile tags: %w", err)
	}
	selection.Record.Tags = domain.NewTagSet(tags...)

	url, err := s.publish.Publish(ctx, selection.Record)
	if err != nil {
		return "", err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		logger.Warn("Failed to clear selection for %s: %v", sessionID, err)
	}
	return url, nil
}

// Cancel discards the session's selection.
func (s *SelectionService) Cancel(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}

// update loads, mutates and saves the session's selection.
func (s *SelectionService) update(
	ctx context.Context,
	sessionID string,
	mutate func(*domain.PendingSelection),
) (*domain.PendingSelection, error) {
	selection, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	mutate(selection)
	if err := s.store.Save(ctx, selection); err != nil {
		return nil, fmt.Errorf("save selection: %w", err)
	}
	return selection, nil
}
