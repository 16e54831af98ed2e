package driven

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// Post is a formatted message ready for a channel.
type Post struct {
	// Text is the message body, used as the caption when Attachment is set.
	Text string

	// Kind is the kind of the record the post was built from.
	Kind domain.ContentKind

	// Attachment is sent alongside Text for file-backed kinds.
	Attachment *domain.Attachment
}

// Publisher sends posts to a channel.
type Publisher interface {
	// Publish sends the post and returns its public URL.
	Publish(ctx context.Context, post Post) (string, error)

	// Ping verifies the credentials with a lightweight request.
	Ping(ctx context.Context) error
}
