package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// mockClassifyService is a mock implementation of driving.ClassifyService.
type mockClassifyService struct {
	result domain.Classification
}

func (m *mockClassifyService) Classify(raw string) domain.Classification {
	r := m.result
	r.Raw = raw
	return r
}

// mockPipelineService is a mock implementation of driving.PipelineService.
type mockPipelineService struct {
	record *domain.ContentRecord
	draft  *domain.Draft
	err    error
	input  string
}

func (m *mockPipelineService) Extract(_ context.Context, raw string) (*domain.ContentRecord, error) {
	m.input = raw
	return m.record, m.err
}

func (m *mockPipelineService) Prepare(_ context.Context, raw string) (*domain.Draft, error) {
	m.input = raw
	return m.draft, m.err
}

func (m *mockPipelineService) PrepareEach(_ context.Context, raw string) ([]*domain.Draft, error) {
	m.input = raw
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.Draft{m.draft}, nil
}

// mockTagService is a mock implementation of driving.TagService.
type mockTagService struct {
	presets    []string
	presetsErr error
	allowNew   bool

	bodyPresets []string
	bodyExtra   []string
	titlePreset []string
	titleExtra  []string

	reconciled   []string
	reconcileErr error

	extraCount int
}

func (m *mockTagService) Presets(_ context.Context) ([]string, error) {
	return m.presets, m.presetsErr
}

func (m *mockTagService) SuggestPresetTags(_ context.Context, _ string) []string {
	return m.bodyPresets
}

func (m *mockTagService) SuggestExtraTags(_ context.Context, _ string, count int) []string {
	m.extraCount = count
	return m.bodyExtra
}

func (m *mockTagService) SuggestFromTitle(_ context.Context, _, _ string) (presets, extra []string) {
	return m.titlePreset, m.titleExtra
}

func (m *mockTagService) ParseUserInput(_ string) []string {
	return nil
}

func (m *mockTagService) Reconcile(_ context.Context, _ []string) ([]string, error) {
	return m.reconciled, m.reconcileErr
}

func (m *mockTagService) AddTag(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (m *mockTagService) AllowNew() bool {
	return m.allowNew
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	s, err := NewServer(ports)
	require.NoError(t, err)
	return s
}
