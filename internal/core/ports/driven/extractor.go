package driven

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// WebExtractor fetches a URL and extracts its readable content.
type WebExtractor interface {
	// Fetch retrieves url and returns a record whose Source is url as given.
	// Transport failures, timeouts and non-2xx statuses return *domain.FetchError.
	Fetch(ctx context.Context, url string) (*domain.ContentRecord, error)
}

// FileExtractor reads a local file and extracts its content.
type FileExtractor interface {
	// Extract reads path as the given kind and attaches the raw bytes.
	// Returns domain.ErrNotFound if the path no longer exists.
	Extract(ctx context.Context, path string, kind domain.ContentKind) (*domain.ContentRecord, error)
}
