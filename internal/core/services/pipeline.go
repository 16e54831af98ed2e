package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// mimeTextPlain routes pasted text to the text normaliser.
const mimeTextPlain = "text/plain"

// PipelineService runs classify, extract, summarise and suggest for one input.
// Extraction errors abort the input; model errors degrade and are counted.
type PipelineService struct {
	classifier  driving.ClassifyService
	web         driven.WebExtractor
	files       driven.FileExtractor
	normalisers driven.NormaliserRegistry
	summary     driving.SummaryService
	tags        driving.TagService
	metrics     driven.Metrics
}

// NewPipelineService creates a pipeline from its stages.
func NewPipelineService(
	classifier driving.ClassifyService,
	web driven.WebExtractor,
	files driven.FileExtractor,
	normalisers driven.NormaliserRegistry,
	summary driving.SummaryService,
	tags driving.TagService,
) *PipelineService {
	return &PipelineService{
		classifier:  classifier,
		web:         web,
		files:       files,
		normalisers: normalisers,
		summary:     summary,
		tags:        tags,
	}
}

// SetMetrics sets the counter sink for extractions and degradations.
func (s *PipelineService) SetMetrics(metrics driven.Metrics) {
	s.metrics = metrics
}

// Extract classifies raw and runs the matching extractor.
func (s *PipelineService) Extract(ctx context.Context, raw string) (*domain.ContentRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty input", domain.ErrInvalidInput)
	}
	defer logger.Timed("extract")()
	c := s.classifier.Classify(raw)
	logger.Debug("Classified input as %s", c.Kind)

	var record *domain.ContentRecord
	var err error
	switch c.Kind {
	case domain.InputUnsupportedFile:
		return nil, &domain.UnsupportedFileError{Path: c.Path, Ext: c.Ext}
	case domain.InputFile:
		record, err = s.files.Extract(ctx, c.Path, c.FileKind)
	case domain.InputLink:
		record, err = s.web.Fetch(ctx, c.URL)
	case domain.InputEmbeddedLink:
		record, err = s.fetchWithContext(ctx, c.URL, c.Extra)
	default:
		record, err = s.extractText(ctx, raw)
	}
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Extracted(record.Kind().String())
	}
	return record, nil
}

// fetchWithContext fetches url and prepends the surrounding user text to the body.
func (s *PipelineService) fetchWithContext(ctx context.Context, url, extra string) (*domain.ContentRecord, error) {
	record, err := s.web.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if extra != "" {
		record.SetBody(extra + "\n\n" + record.Body)
	}
	return record, nil
}

// extractText normalises pasted text.
func (s *PipelineService) extractText(ctx context.Context, raw string) (*domain.ContentRecord, error) {
	result, err := s.normalisers.Normalise(ctx, &domain.RawContent{
		URI:      domain.SourceText,
		Source:   domain.SourceText,
		MIMEType: mimeTextPlain,
		Content:  []byte(strings.TrimSpace(raw)),
	})
	if err != nil {
		return nil, fmt.Errorf("normalise text: %w", err)
	}
	return result.Record, nil
}

// Prepare extracts, summarises and suggests tags for raw.
func (s *PipelineService) Prepare(ctx context.Context, raw string) (*domain.Draft, error) {
	record, err := s.Extract(ctx, raw)
	if err != nil {
		return nil, err
	}
	return s.draft(ctx, record), nil
}

// PrepareEach prepares one draft per URL found in raw. A URL that fails
// to fetch is skipped; the call fails only when every URL fails.
func (s *PipelineService) PrepareEach(ctx context.Context, raw string) ([]*domain.Draft, error) {
	c := s.classifier.Classify(raw)
	if c.Kind != domain.InputEmbeddedLink || len(c.URLs) < 2 {
		d, err := s.Prepare(ctx, raw)
		if err != nil {
			return nil, err
		}
		return []*domain.Draft{d}, nil
	}

	extra := c.Extra
	for _, url := range c.URLs {
		extra = strings.ReplaceAll(extra, url, "")
	}
	extra = strings.TrimSpace(extra)

	var drafts []*domain.Draft
	var errs []error
	for _, url := range c.URLs {
		record, err := s.fetchWithContext(ctx, url, extra)
		if err != nil {
			logger.Warn("Skipping %s: %v", url, err)
			errs = append(errs, err)
			continue
		}
		if s.metrics != nil {
			s.metrics.Extracted(record.Kind().String())
		}
		drafts = append(drafts, s.draft(ctx, record))
	}
	if len(drafts) == 0 {
		return nil, errors.Join(errs...)
	}
	return drafts, nil
}

// draft summarises record and collects tag suggestions. It never fails:
// a failed summary falls back to suggestions from the title alone.
func (s *PipelineService) draft(ctx context.Context, record *domain.ContentRecord) *domain.Draft {
	d := &domain.Draft{Record: record}
	hasBody := strings.TrimSpace(record.Body) != ""

	summarised := false
	if hasBody {
		summary, err := s.summary.SummarizeBilingual(ctx, record.Body, record.Title)
		switch {
		case err == nil:
			domain.ApplySummary(record, summary)
			summarised = true
		case errors.Is(err, domain.ErrLLMUnavailable):
			logger.Debug("No LLM configured, skipping summary")
		default:
			d.SummaryFailed = true
			recordDegraded(s.metrics, driven.StageSummary, err)
		}
	}

	if summarised {
		d.Suggested = s.tags.SuggestPresetTags(ctx, record.Body)
		d.Extra = s.tags.SuggestExtraTags(ctx, record.Body, DefaultExtraTagCount)
	}
	if len(d.Suggested) == 0 {
		presets, extra := s.tags.SuggestFromTitle(ctx, record.Title, record.Source)
		d.Suggested = presets
		if len(d.Extra) == 0 {
			d.Extra = extra
		}
	}
	return d
}
