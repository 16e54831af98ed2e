package driving

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// SummaryService produces bilingual titles and summaries.
type SummaryService interface {
	// SummarizeBilingual summarises body, translating originalTitle when given.
	// Returns domain.ErrLLMUnavailable without a model and wraps
	// domain.ErrModelCall when the model fails.
	SummarizeBilingual(ctx context.Context, body, originalTitle string) (domain.BilingualSummary, error)
}
