package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

const (
	// summaryBodyRunes bounds the content sent for summarisation.
	summaryBodyRunes = 5000

	// summaryMaxRunes is the requested summary length.
	summaryMaxRunes = 200
)

// SummaryService asks the model for a bilingual title and summary.
type SummaryService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	metrics driven.Metrics
}

// NewSummaryService creates a summary service. llm may be nil.
func NewSummaryService(llm driven.LLMService) *SummaryService {
	return &SummaryService{llm: llm}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *SummaryService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// SetMetrics sets the counter sink for degradations and model calls.
func (s *SummaryService) SetMetrics(metrics driven.Metrics) {
	s.metrics = metrics
}

// SummarizeBilingual summarises body, translating originalTitle when given.
// A Chinese title that fails the completeness check is re-requested once;
// if the retry also fails the first answer is kept.
func (s *SummaryService) SummarizeBilingual(
	ctx context.Context,
	body, originalTitle string,
) (domain.BilingualSummary, error) {
	if s.llm == nil {
		return domain.BilingualSummary{}, domain.ErrLLMUnavailable
	}

	var system string
	if originalTitle != "" {
		system = fmt.Sprintf(loadPrompt(s.prompts, driven.PromptSummaryTranslate), originalTitle, summaryMaxRunes)
	} else {
		system = fmt.Sprintf(loadPrompt(s.prompts, driven.PromptSummaryGenerate), summaryMaxRunes)
	}
	user := "请为以下内容生成双语标题和摘要：\n\n" + domain.TruncateRunes(body, summaryBodyRunes)

	reply, err := chat(ctx, s.llm, s.metrics, system, user, driven.ChatOptions{})
	if err != nil {
		return domain.BilingualSummary{}, fmt.Errorf("%w: %v", domain.ErrModelCall, err)
	}

	summary := parseBilingual(reply)
	if summary.TitleEn == "" {
		summary.TitleEn = originalTitle
	}

	if originalTitle != "" && !titleTranslationComplete(originalTitle, summary.TitleCn) {
		logger.Debug("Chinese title %q looks incomplete for %q, retrying", summary.TitleCn, originalTitle)
		if retry, ok := s.retranslateTitle(ctx, originalTitle); ok {
			summary.TitleCn = retry
			summary.Retranslated = true
		} else {
			recordDegraded(s.metrics, driven.StageTitle, fmt.Errorf("title translation incomplete: %q", summary.TitleCn))
		}
	}

	return summary, nil
}

// retranslateTitle asks for a title-only translation and applies the same check.
func (s *SummaryService) retranslateTitle(ctx context.Context, title string) (string, bool) {
	system := loadPrompt(s.prompts, driven.PromptTranslateTitle)
	reply, err := chat(ctx, s.llm, s.metrics, system, "翻译: "+title, driven.ChatOptions{})
	if err != nil {
		logger.Debug("Title retranslation failed: %v", err)
		return "", false
	}
	reply = strings.TrimSpace(strings.SplitN(reply, "\n", 2)[0])
	if !titleTranslationComplete(title, reply) {
		return "", false
	}
	return reply, true
}

// parseBilingual reads the four labelled lines of a summary reply.
// Missing labels leave their field empty.
func parseBilingual(reply string) domain.BilingualSummary {
	var out domain.BilingualSummary
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := cutLabel(line, "标题中文"); ok {
			out.TitleCn = v
		} else if v, ok := cutLabel(line, "摘要中文"); ok {
			out.SummaryCn = v
		} else if v, ok := cutLabel(line, "标题英文"); ok {
			out.TitleEn = v
		} else if v, ok := cutLabel(line, "摘要英文"); ok {
			out.SummaryEn = v
		}
	}
	return out
}

// titleTranslationComplete is the self-check for a translated title.
// Titles that are already Chinese need no translation. Otherwise the
// translation must contain Han characters and be at least as many runes
// as the original has words.
func titleTranslationComplete(original, translated string) bool {
	if containsHan(original) {
		return true
	}
	if !containsHan(translated) {
		return false
	}
	return utf8.RuneCountInString(translated) >= len(strings.Fields(original))
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
