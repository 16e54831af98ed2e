package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// MockPipelineService implements driving.PipelineService for testing.
type MockPipelineService struct {
	PrepareEachFunc func(ctx context.Context, raw string) ([]*domain.Draft, error)
}

func (m *MockPipelineService) Extract(_ context.Context, _ string) (*domain.ContentRecord, error) {
	return nil, nil
}

func (m *MockPipelineService) Prepare(ctx context.Context, raw string) (*domain.Draft, error) {
	drafts, err := m.PrepareEach(ctx, raw)
	if err != nil || len(drafts) == 0 {
		return nil, err
	}
	return drafts[0], nil
}

func (m *MockPipelineService) PrepareEach(ctx context.Context, raw string) ([]*domain.Draft, error) {
	if m.PrepareEachFunc != nil {
		return m.PrepareEachFunc(ctx, raw)
	}
	return []*domain.Draft{newDraft(raw)}, nil
}

// MockSelectionService implements driving.SelectionService over a map.
type MockSelectionService struct {
	selections map[string]*domain.PendingSelection
	StartErr   error
	ConfirmErr error
	published  []string
}

func NewMockSelectionService() *MockSelectionService {
	return &MockSelectionService{selections: make(map[string]*domain.PendingSelection)}
}

func (m *MockSelectionService) Start(
	_ context.Context, sessionID string, draft *domain.Draft,
) (*domain.PendingSelection, error) {
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	sel := domain.NewPendingSelection(sessionID, draft, time.Now())
	m.selections[sessionID] = sel
	return sel, nil
}

func (m *MockSelectionService) Get(_ context.Context, sessionID string) (*domain.PendingSelection, error) {
	sel, ok := m.selections[sessionID]
	if !ok {
		return nil, domain.ErrNoPendingSelection
	}
	return sel, nil
}

func (m *MockSelectionService) Toggle(ctx context.Context, sessionID, tag string) (*domain.PendingSelection, error) {
	sel, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel.Selected.Toggle(tag)
	return sel, nil
}

func (m *MockSelectionService) AddTags(ctx context.Context, sessionID, input string) (*domain.PendingSelection, error) {
	sel, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel.Selected.Add(input)
	return sel, nil
}

func (m *MockSelectionService) SetMessageID(_ context.Context, _, _ string) error {
	return nil
}

func (m *MockSelectionService) Confirm(ctx context.Context, sessionID string) (string, error) {
	sel, err := m.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if m.ConfirmErr != nil {
		return "", m.ConfirmErr
	}
	delete(m.selections, sessionID)
	url := fmt.Sprintf("https://t.me/kb/%d", len(m.published)+1)
	m.published = append(m.published, sel.Record.Title)
	return url, nil
}

func (m *MockSelectionService) Cancel(_ context.Context, sessionID string) error {
	delete(m.selections, sessionID)
	return nil
}

// MockTagService implements driving.TagService for testing.
type MockTagService struct {
	PresetsFunc func(ctx context.Context) ([]string, error)
}

func (m *MockTagService) Presets(ctx context.Context) ([]string, error) {
	if m.PresetsFunc != nil {
		return m.PresetsFunc(ctx)
	}
	return []string{"论文", "工具"}, nil
}

func (m *MockTagService) SuggestPresetTags(_ context.Context, _ string) []string { return nil }

func (m *MockTagService) SuggestExtraTags(_ context.Context, _ string, _ int) []string { return nil }

func (m *MockTagService) SuggestFromTitle(_ context.Context, _, _ string) (presets, extra []string) {
	return nil, nil
}

func (m *MockTagService) ParseUserInput(input string) []string { return []string{input} }

func (m *MockTagService) Reconcile(_ context.Context, tags []string) ([]string, error) {
	return tags, nil
}

func (m *MockTagService) AddTag(_ context.Context, _ string) (bool, error) { return false, nil }

func (m *MockTagService) AllowNew() bool { return false }

// MockPublishService implements driving.PublishService for testing.
type MockPublishService struct{}

func (m *MockPublishService) Preview(record *domain.ContentRecord) string {
	return domain.FormatPost(record)
}

func (m *MockPublishService) Publish(_ context.Context, _ *domain.ContentRecord) (string, error) {
	return "https://t.me/kb/1", nil
}

func (m *MockPublishService) Available() bool { return true }

func newDraft(title string) *domain.Draft {
	record := domain.NewContentRecord("id-"+title, domain.KindText, title, "body of "+title, domain.SourceText)
	return &domain.Draft{Record: record, Suggested: []string{"论文"}, Extra: []string{"extra"}}
}
