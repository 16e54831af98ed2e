package driven

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// Normaliser transforms raw bytes into a ContentRecord.
// Each normaliser handles specific MIME types (e.g., PDF, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	// A trailing "/*" matches a whole family (e.g., "image/*").
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Site-aware normalisers should return 90-100.
	// Generic MIME normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise transforms raw content into a record.
	Normalise(ctx context.Context, raw *domain.RawContent) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Record is the extracted content with Body capped.
	Record *domain.ContentRecord
}
