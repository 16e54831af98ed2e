package services

import (
	"context"
	"path"

	"github.com/google/uuid"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure PublishService implements the interface.
var _ driving.PublishService = (*PublishService)(nil)

// PublishService formats records as bilingual posts and sends them.
type PublishService struct {
	publisher driven.Publisher
	archive   driven.AttachmentArchive
	metrics   driven.Metrics
}

// NewPublishService creates a publish service. publisher may be nil, in
// which case Publish fails with domain.ErrPublisherUnavailable.
func NewPublishService(publisher driven.Publisher) *PublishService {
	return &PublishService{publisher: publisher}
}

// SetArchive sets the store that backs up attachments before publishing.
func (s *PublishService) SetArchive(archive driven.AttachmentArchive) {
	s.archive = archive
}

// SetMetrics sets the counter sink for publish outcomes.
func (s *PublishService) SetMetrics(metrics driven.Metrics) {
	s.metrics = metrics
}

// Available reports whether a publisher is configured.
func (s *PublishService) Available() bool {
	return s.publisher != nil
}

// Preview returns the post text without sending it.
func (s *PublishService) Preview(record *domain.ContentRecord) string {
	return domain.FormatPost(record)
}

// Publish sends the record and returns the post URL.
// Archiving is best effort; a publish failure is always returned.
func (s *PublishService) Publish(ctx context.Context, record *domain.ContentRecord) (string, error) {
	if s.publisher == nil {
		return "", &domain.PublishError{Err: domain.ErrPublisherUnavailable}
	}

	post := driven.Post{
		Text: domain.FormatPost(record),
		Kind: record.Kind(),
	}
	if record.Kind().HasAttachment() {
		post.Attachment = record.Attachment
	}

	if post.Attachment != nil && s.archive != nil {
		key := uuid.NewString() + path.Ext(post.Attachment.Name)
		if location, err := s.archive.Put(ctx, key, post.Attachment); err != nil {
			recordDegraded(s.metrics, driven.StageArchive, err)
		} else {
			logger.Info("Archived %s to %s", post.Attachment.Name, location)
		}
	}

	done := logger.Timed("publish")
	url, err := s.publisher.Publish(ctx, post)
	done()
	if err != nil {
		s.recordPublished(outcomeError)
		return "", &domain.PublishError{Err: err}
	}
	s.recordPublished(outcomeOK)
	logger.Info("Published %s", url)
	return url, nil
}

func (s *PublishService) recordPublished(outcome string) {
	if s.metrics != nil {
		s.metrics.Published(outcome)
	}
}
