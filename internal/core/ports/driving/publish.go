package driving

import (
	"context"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// PublishService formats and sends records to the channel.
type PublishService interface {
	// Preview returns the post text without sending it.
	Preview(record *domain.ContentRecord) string

	// Publish sends the record and returns the post URL.
	// Every failure wraps domain.ErrPublish.
	Publish(ctx context.Context, record *domain.ContentRecord) (string, error)

	// Available reports whether a publisher is configured.
	Available() bool
}
