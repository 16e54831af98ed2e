package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

func TestServer_handleClassify(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &Ports{
		Classify: &mockClassifyService{result: domain.Classification{
			Kind:  domain.InputEmbeddedLink,
			URL:   "https://example.com/a",
			URLs:  []string{"https://example.com/a"},
			Extra: "worth a read",
		}},
		Pipeline: &mockPipelineService{},
		Tags:     &mockTagService{},
	})

	t.Run("returns classification", func(t *testing.T) {
		_, out, err := server.handleClassify(ctx, nil, ClassifyInput{Input: "worth a read https://example.com/a"})
		require.NoError(t, err)
		assert.Equal(t, "embedded_link", out.Kind)
		assert.Equal(t, "https://example.com/a", out.URL)
		assert.Equal(t, "worth a read", out.Extra)
	})

	t.Run("blank input is rejected", func(t *testing.T) {
		_, _, err := server.handleClassify(ctx, nil, ClassifyInput{Input: "  "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("drops attachment bytes", func(t *testing.T) {
		record := domain.NewContentRecord("r1", domain.KindPdf, "Paper", "body text", "/tmp/paper.pdf")
		record.Attachment = domain.NewAttachment("paper.pdf", "application/pdf", []byte("%PDF-1.7"))
		pipeline := &mockPipelineService{record: record}
		server := newTestServer(t, &Ports{Pipeline: pipeline, Tags: &mockTagService{}})

		_, out, err := server.handleExtract(ctx, nil, ExtractInput{Input: "/tmp/paper.pdf"})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/paper.pdf", pipeline.input)
		assert.Equal(t, "pdf", out.Kind)
		assert.Equal(t, "Paper", out.Title)
		assert.Equal(t, "paper.pdf", out.AttachmentName)
		assert.Equal(t, int64(8), out.AttachmentSize)
	})

	t.Run("returns extraction error", func(t *testing.T) {
		pipeline := &mockPipelineService{err: &domain.FetchError{URL: "https://x.example", Status: 404}}
		server := newTestServer(t, &Ports{Pipeline: pipeline, Tags: &mockTagService{}})

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{Input: "https://x.example"})
		assert.ErrorIs(t, err, domain.ErrFetch)
	})
}

func TestServer_handlePrepare(t *testing.T) {
	ctx := context.Background()
	record := domain.NewContentRecord("r1", domain.KindLink, "Title", "body", "https://example.com")
	record.Summary = "摘要"
	record.SummaryTranslated = "Summary"
	pipeline := &mockPipelineService{draft: &domain.Draft{
		Record:    record,
		Suggested: []string{"AI"},
	}}
	server := newTestServer(t, &Ports{Pipeline: pipeline, Tags: &mockTagService{}})

	_, out, err := server.handlePrepare(ctx, nil, ExtractInput{Input: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "摘要", out.Record.Summary)
	assert.Equal(t, "Summary", out.Record.SummaryTranslated)
	assert.Equal(t, []string{"AI"}, out.Suggested)
	assert.NotNil(t, out.Extra)
	assert.Empty(t, out.Extra)
}

func TestServer_handleSuggestTags(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		tags        *mockTagService
		input       SuggestTagsInput
		wantPresets []string
		wantExtra   []string
		wantCount   int
	}{
		{
			name: "body suggestions",
			tags: &mockTagService{
				bodyPresets: []string{"AI"},
				bodyExtra:   []string{"RLHF"},
			},
			input:       SuggestTagsInput{Title: "t", Body: "about reward models"},
			wantPresets: []string{"AI"},
			wantExtra:   []string{"RLHF"},
			wantCount:   defaultExtraTags,
		},
		{
			name: "custom count",
			tags: &mockTagService{
				bodyPresets: []string{"AI"},
			},
			input:       SuggestTagsInput{Body: "body", Count: 2},
			wantPresets: []string{"AI"},
			wantExtra:   []string{},
			wantCount:   2,
		},
		{
			name: "falls back to title",
			tags: &mockTagService{
				titlePreset: []string{"Tools"},
				titleExtra:  []string{"CLI"},
			},
			input:       SuggestTagsInput{Title: "A handy CLI"},
			wantPresets: []string{"Tools"},
			wantExtra:   []string{"CLI"},
		},
		{
			name: "body extras kept over title extras",
			tags: &mockTagService{
				bodyExtra:   []string{"Go"},
				titlePreset: []string{"Programming"},
				titleExtra:  []string{"ignored"},
			},
			input:       SuggestTagsInput{Title: "Go tips", Body: "generics"},
			wantPresets: []string{"Programming"},
			wantExtra:   []string{"Go"},
			wantCount:   defaultExtraTags,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, &Ports{Pipeline: &mockPipelineService{}, Tags: tt.tags})

			_, out, err := server.handleSuggestTags(ctx, nil, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPresets, out.Presets)
			assert.Equal(t, tt.wantExtra, out.Extra)
			assert.Equal(t, tt.wantCount, tt.tags.extraCount)
		})
	}

	t.Run("requires title or body", func(t *testing.T) {
		server := newTestServer(t, &Ports{Pipeline: &mockPipelineService{}, Tags: &mockTagService{}})

		_, _, err := server.handleSuggestTags(ctx, nil, SuggestTagsInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleReconcileTags(t *testing.T) {
	ctx := context.Background()

	t.Run("returns reconciled tags", func(t *testing.T) {
		tags := &mockTagService{reconciled: []string{"AI", "Research"}}
		server := newTestServer(t, &Ports{Pipeline: &mockPipelineService{}, Tags: tags})

		_, out, err := server.handleReconcileTags(ctx, nil, ReconcileTagsInput{Tags: []string{"ai", "paper"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"AI", "Research"}, out.Tags)
	})

	t.Run("model failure surfaces", func(t *testing.T) {
		tags := &mockTagService{reconcileErr: domain.ErrModelCall}
		server := newTestServer(t, &Ports{Pipeline: &mockPipelineService{}, Tags: tags})

		_, _, err := server.handleReconcileTags(ctx, nil, ReconcileTagsInput{Tags: []string{"x"}})
		assert.ErrorIs(t, err, domain.ErrModelCall)
	})
}
