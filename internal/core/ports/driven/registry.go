package driven

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for raw content.
// It maintains a priority-ordered list of normalisers and dispatches
// based on MIME type.
type NormaliserRegistry interface {
	// Normalise transforms raw content using the best matching normaliser.
	Normalise(ctx context.Context, raw *domain.RawContent) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
