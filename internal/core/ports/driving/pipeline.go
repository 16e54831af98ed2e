package driving

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// PipelineService turns raw input into records and drafts.
type PipelineService interface {
	// Extract classifies raw and runs the matching extractor.
	Extract(ctx context.Context, raw string) (*domain.ContentRecord, error)

	// Prepare extracts, summarises and suggests tags for raw.
	Prepare(ctx context.Context, raw string) (*domain.Draft, error)

	// PrepareEach prepares one draft per URL found in raw.
	// Input without embedded URLs yields a single draft.
	PrepareEach(ctx context.Context, raw string) ([]*domain.Draft, error)
}
