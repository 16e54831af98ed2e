package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

const bilingualReply = `标题中文：注意力就是你所需要的一切
摘要中文: 提出了 Transformer 架构。
标题英文: Attention Is All You Need
摘要英文: Introduces the Transformer architecture.`

func TestSummaryService_NoLLM(t *testing.T) {
	_, err := NewSummaryService(nil).SummarizeBilingual(context.Background(), "body", "")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestSummaryService_ModelError(t *testing.T) {
	service := NewSummaryService(newMockLLM().fail(errors.New("503")))

	_, err := service.SummarizeBilingual(context.Background(), "body", "")

	assert.ErrorIs(t, err, domain.ErrModelCall)
	assert.ErrorContains(t, err, "503")
}

func TestSummaryService_GenerateWithoutTitle(t *testing.T) {
	llm := newMockLLM(bilingualReply)
	service := NewSummaryService(llm)

	summary, err := service.SummarizeBilingual(context.Background(), strings.Repeat("a", 6000), "")

	require.NoError(t, err)
	assert.Equal(t, "注意力就是你所需要的一切", summary.TitleCn)
	assert.Equal(t, "提出了 Transformer 架构。", summary.SummaryCn)
	assert.Equal(t, "Attention Is All You Need", summary.TitleEn)
	assert.Equal(t, "Introduces the Transformer architecture.", summary.SummaryEn)
	assert.False(t, summary.Retranslated)

	system, user := llm.request(0)
	assert.Contains(t, system, "200")
	body := strings.TrimPrefix(user, "请为以下内容生成双语标题和摘要：\n\n")
	assert.Len(t, body, 5000)
}

func TestSummaryService_TranslateKeepsGoodTitle(t *testing.T) {
	llm := newMockLLM(bilingualReply)
	service := NewSummaryService(llm)

	summary, err := service.SummarizeBilingual(context.Background(), "body", "Attention Is All You Need")

	require.NoError(t, err)
	assert.Equal(t, "注意力就是你所需要的一切", summary.TitleCn)
	assert.Equal(t, 1, llm.calls())
	system, _ := llm.request(0)
	assert.Contains(t, system, "Attention Is All You Need")
}

func TestSummaryService_TitleEnDefaultsToOriginal(t *testing.T) {
	llm := newMockLLM("标题中文: 一篇关于大型语言模型推理的长文章\n摘要中文: 摘要")
	service := NewSummaryService(llm)

	summary, err := service.SummarizeBilingual(context.Background(), "body", "Reasoning in LLMs")

	require.NoError(t, err)
	assert.Equal(t, "Reasoning in LLMs", summary.TitleEn)
	assert.Empty(t, summary.SummaryEn)
}

func TestSummaryService_RetranslatesIncompleteTitle(t *testing.T) {
	llm := newMockLLM(
		"标题中文: 注意力\n摘要中文: 摘要",
		"注意力机制就是你所需要的全部\n(extra commentary)",
	)
	service := NewSummaryService(llm)

	summary, err := service.SummarizeBilingual(context.Background(), "body", "Attention Is All You Need")

	require.NoError(t, err)
	assert.Equal(t, "注意力机制就是你所需要的全部", summary.TitleCn)
	assert.True(t, summary.Retranslated)
	assert.Equal(t, "摘要", summary.SummaryCn)

	system, user := llm.request(1)
	assert.Equal(t, driven.DefaultPrompt(driven.PromptTranslateTitle), system)
	assert.Equal(t, "翻译: Attention Is All You Need", user)
}

func TestSummaryService_RetryFailureKeepsFirstAnswer(t *testing.T) {
	metrics := newMockMetrics()
	llm := newMockLLM("标题中文: Attention\n摘要中文: 摘要", "Attention")
	service := NewSummaryService(llm)
	service.SetMetrics(metrics)

	summary, err := service.SummarizeBilingual(context.Background(), "body", "Attention Is All You Need")

	require.NoError(t, err)
	assert.Equal(t, "Attention", summary.TitleCn)
	assert.False(t, summary.Retranslated)
	assert.Equal(t, 1, metrics.degraded[driven.StageTitle])
}

func TestSummaryService_RetryErrorKeepsFirstAnswer(t *testing.T) {
	llm := newMockLLM("摘要中文: 摘要").fail(errors.New("timeout"))
	service := NewSummaryService(llm)

	summary, err := service.SummarizeBilingual(context.Background(), "body", "Some English Title")

	require.NoError(t, err)
	assert.Empty(t, summary.TitleCn)
	assert.Equal(t, 2, llm.calls())
}

func TestSummaryService_ChineseOriginalSkipsCheck(t *testing.T) {
	llm := newMockLLM("摘要中文: 摘要")
	service := NewSummaryService(llm)

	_, err := service.SummarizeBilingual(context.Background(), "body", "大模型综述")

	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls())
}

func TestTitleTranslationComplete(t *testing.T) {
	tests := []struct {
		original   string
		translated string
		want       bool
	}{
		{"Attention Is All You Need", "注意力就是你所需要的一切", true},
		{"Attention Is All You Need", "注意力", false},
		{"Attention Is All You Need", "Attention Is All You Need", false},
		{"GPT-4", "GPT-4 技术报告", true},
		{"知乎文章", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.original+"/"+tt.translated, func(t *testing.T) {
			assert.Equal(t, tt.want, titleTranslationComplete(tt.original, tt.translated))
		})
	}
}

func TestParseBilingual_IgnoresNoise(t *testing.T) {
	summary := parseBilingual("好的，以下是结果：\n\n  标题英文 : x\n摘要英文：English summary\n")

	assert.Empty(t, summary.TitleEn, "label must be followed directly by a colon")
	assert.Equal(t, "English summary", summary.SummaryEn)
}
