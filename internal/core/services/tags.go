package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

const (
	// DefaultExtraTagCount is how many free-form tags are requested.
	DefaultExtraTagCount = 5

	// maxTagRunes rejects model tags that are sentences rather than tags.
	maxTagRunes = 30

	// tagBodyRunes bounds the content sent for tag suggestion.
	tagBodyRunes = 3000
)

// TagOptions configures a TagService.
type TagOptions struct {
	// AllowNew permits unseen tags to join the vocabulary.
	AllowNew bool

	// PresetOverride replaces the stored vocabulary for this process.
	PresetOverride []string
}

// TagService reconciles model and user tags against the preset vocabulary.
// Vocabulary read-then-append runs under a mutex so concurrent sessions in
// one process never lose an added tag.
type TagService struct {
	mu       sync.Mutex
	store    driven.VocabularyStore
	llm      driven.LLMService
	prompts  driven.PromptStore
	metrics  driven.Metrics
	allowNew bool
	override []string
}

// NewTagService creates a tag service. llm may be nil, in which case every
// suggestion is empty.
func NewTagService(store driven.VocabularyStore, llm driven.LLMService, opts TagOptions) *TagService {
	return &TagService{
		store:    store,
		llm:      llm,
		allowNew: opts.AllowNew,
		override: append([]string(nil), opts.PresetOverride...),
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *TagService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// SetMetrics sets the counter sink for degradations and model calls.
func (s *TagService) SetMetrics(metrics driven.Metrics) {
	s.metrics = metrics
}

// AllowNew reports whether unseen tags may join the vocabulary.
func (s *TagService) AllowNew() bool {
	return s.allowNew
}

// Presets returns the current vocabulary.
// An empty store yields the default presets.
func (s *TagService) Presets(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presetsLocked()
}

func (s *TagService) presetsLocked() ([]string, error) {
	if len(s.override) > 0 {
		return append([]string(nil), s.override...), nil
	}
	tags, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	if len(tags) == 0 {
		return domain.DefaultPresetTags(), nil
	}
	return tags, nil
}

// SuggestPresetTags asks the model for every relevant preset and returns the
// matches in preset casing. Tokens that match no preset are dropped.
func (s *TagService) SuggestPresetTags(ctx context.Context, body string) []string {
	if s.llm == nil || strings.TrimSpace(body) == "" {
		return nil
	}
	presets, err := s.Presets(ctx)
	if err != nil {
		recordDegraded(s.metrics, driven.StagePresetTags, err)
		return nil
	}

	system := fmt.Sprintf(loadPrompt(s.prompts, driven.PromptPresetTags), strings.Join(presets, ", "))
	user := "分析以下内容并选择所有相关的预设标签：\n\n" + domain.TruncateRunes(body, tagBodyRunes)

	reply, err := chat(ctx, s.llm, s.metrics, system, user, driven.ChatOptions{})
	if err != nil {
		recordDegraded(s.metrics, driven.StagePresetTags, err)
		return nil
	}

	tags := matchPresets(reply, presets)
	logger.Debug("Preset tags: %v", tags)
	return tags
}

// matchPresets splits a comma list and maps each token onto its preset.
// An exact match wins over a case-insensitive one.
func matchPresets(reply string, presets []string) []string {
	exact := make(map[string]struct{}, len(presets))
	folded := make(map[string]string, len(presets))
	for _, p := range presets {
		exact[p] = struct{}{}
		if _, ok := folded[strings.ToLower(p)]; !ok {
			folded[strings.ToLower(p)] = p
		}
	}

	var out domain.TagSet
	for _, token := range strings.Split(width.Narrow.String(reply), ",") {
		token = strings.TrimSpace(token)
		if _, ok := exact[token]; ok {
			out.Add(token)
			continue
		}
		if canonical, ok := folded[strings.ToLower(token)]; ok {
			out.Add(canonical)
		}
	}
	return out.Slice()
}

// SuggestExtraTags asks the model for count free-form tags that are not presets.
func (s *TagService) SuggestExtraTags(ctx context.Context, body string, count int) []string {
	if s.llm == nil || strings.TrimSpace(body) == "" {
		return nil
	}
	if count <= 0 {
		count = DefaultExtraTagCount
	}
	presets, err := s.Presets(ctx)
	if err != nil {
		recordDegraded(s.metrics, driven.StageExtraTags, err)
		return nil
	}

	system := fmt.Sprintf(loadPrompt(s.prompts, driven.PromptExtraTags), count, strings.Join(presets, ", "))
	user := fmt.Sprintf("为以下内容生成%d个标签：\n\n%s", count, domain.TruncateRunes(body, tagBodyRunes))

	reply, err := chat(ctx, s.llm, s.metrics, system, user, driven.ChatOptions{})
	if err != nil {
		recordDegraded(s.metrics, driven.StageExtraTags, err)
		return nil
	}

	tags := filterExtra(splitTags(reply), presets, count)
	logger.Debug("Extra tags: %v", tags)
	return tags
}

// filterExtra drops over-long tags and presets and keeps at most limit.
func filterExtra(tags, presets []string, limit int) []string {
	preset := domain.NewTagSet(presets...)
	var out domain.TagSet
	for _, t := range tags {
		if out.Len() >= limit {
			break
		}
		if utf8.RuneCountInString(t) > maxTagRunes || preset.Contains(t) {
			continue
		}
		out.Add(t)
	}
	return out.Slice()
}

// SuggestFromTitle suggests tags from a title and source alone. It is the
// fallback when the body is empty or summarisation failed.
// The reply must follow the two-line "预设: ..." / "额外: ..." grammar.
func (s *TagService) SuggestFromTitle(ctx context.Context, title, source string) ([]string, []string) {
	if s.llm == nil || strings.TrimSpace(title) == "" {
		return nil, nil
	}
	presets, err := s.Presets(ctx)
	if err != nil {
		recordDegraded(s.metrics, driven.StageTitleTags, err)
		return nil, nil
	}

	system := fmt.Sprintf(loadPrompt(s.prompts, driven.PromptTitleTags), strings.Join(presets, ", "))
	user := "标题: " + title
	if source != "" {
		user += "\n来源: " + source
	}

	reply, err := chat(ctx, s.llm, s.metrics, system, user, driven.ChatOptions{})
	if err != nil {
		recordDegraded(s.metrics, driven.StageTitleTags, err)
		return nil, nil
	}

	presetTags, extraTags := parseTitleTags(reply, presets)
	logger.Debug("Title tags: preset=%v extra=%v", presetTags, extraTags)
	return presetTags, extraTags
}

// parseTitleTags reads the two-line grammar. Preset entries must be exact
// vocabulary members and extra tags are capped at DefaultExtraTagCount.
func parseTitleTags(reply string, presets []string) ([]string, []string) {
	preset := domain.NewTagSet(presets...)
	var matched domain.TagSet
	var extra []string

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := cutLabel(line, "预设", "preset"); ok {
			for _, t := range splitTags(rest) {
				if preset.Contains(t) {
					matched.Add(t)
				}
			}
			continue
		}
		if rest, ok := cutLabel(line, "额外", "extra"); ok {
			extra = append(extra, splitTags(rest)...)
		}
	}

	return matched.Slice(), filterExtra(extra, presets, DefaultExtraTagCount)
}

// ParseUserInput splits free-form user input on commas and whitespace.
func (s *TagService) ParseUserInput(input string) []string {
	var out []string
	for _, t := range tagSeparators.Split(width.Narrow.String(input), -1) {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Reconcile splits tags into preset matches and new tags. New tags are
// appended to the vocabulary and kept only when allowed; otherwise they
// are dropped. The result is the preset matches then the new tags, each
// in the order given, without duplicates.
func (s *TagService) Reconcile(_ context.Context, tags []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets, err := s.presetsLocked()
	if err != nil {
		return nil, err
	}
	vocabulary := domain.NewTagSet(presets...)

	var matched, fresh domain.TagSet
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t == "" {
			continue
		}
		if vocabulary.Contains(t) {
			matched.Add(t)
		} else {
			fresh.Add(t)
		}
	}

	final := domain.NewTagSet(matched.Slice()...)
	if !s.allowNew {
		if fresh.Len() > 0 {
			logger.Debug("Dropped tags outside the vocabulary: %v", fresh.Slice())
		}
		return final.Slice(), nil
	}

	if fresh.Len() > 0 {
		if err := s.appendLocked(presets, fresh.Slice()); err != nil {
			return nil, err
		}
	}
	for _, t := range fresh.Slice() {
		final.Add(t)
	}
	logger.Debug("Reconciled tags: %v", final.Slice())
	return final.Slice(), nil
}

// AddTag appends tag to the vocabulary.
// Returns false when new tags are not allowed or the tag already exists.
func (s *TagService) AddTag(_ context.Context, tag string) (bool, error) {
	if !s.allowNew {
		return false, nil
	}
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	presets, err := s.presetsLocked()
	if err != nil {
		return false, err
	}
	if domain.NewTagSet(presets...).Contains(tag) {
		return false, nil
	}
	if err := s.appendLocked(presets, []string{tag}); err != nil {
		return false, err
	}
	return true, nil
}

// appendLocked saves presets plus the tags not yet present (caller must hold mu).
func (s *TagService) appendLocked(presets, tags []string) error {
	updated := domain.NewTagSet(presets...)
	added := 0
	for _, t := range tags {
		if updated.Add(t) {
			added++
		}
	}
	if added == 0 {
		return nil
	}

	if err := s.store.Save(updated.Slice()); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	if len(s.override) > 0 {
		s.override = updated.Slice()
	}
	logger.Info("Added %d tag(s) to vocabulary", added)
	return nil
}
