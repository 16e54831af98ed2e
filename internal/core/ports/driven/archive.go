package driven

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// AttachmentArchive backs up attachment bytes before they are published.
type AttachmentArchive interface {
	// Put stores the attachment under key and returns its location.
	Put(ctx context.Context, key string, attachment *domain.Attachment) (string, error)
}
