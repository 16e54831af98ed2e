package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Model call outcomes for Metrics.ModelCall.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// tagSeparators splits model and user tag lists. Full-width commas are
// folded to ASCII before splitting.
var tagSeparators = regexp.MustCompile(`[,\s]+`)

// loadPrompt loads a prompt from the store, falling back to the built-in default.
func loadPrompt(store driven.PromptStore, name string) string {
	if store == nil {
		return driven.DefaultPrompt(name)
	}
	prompt, err := store.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		logger.Debug("Prompt %q unavailable, using default", name)
		return driven.DefaultPrompt(name)
	}
	return prompt
}

// chat sends a system and user message and returns the trimmed reply.
func chat(
	ctx context.Context,
	llm driven.LLMService,
	metrics driven.Metrics,
	system, user string,
	opts driven.ChatOptions,
) (string, error) {
	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: user},
	}

	result, err := llm.Chat(ctx, messages, opts)
	if metrics != nil {
		outcome := outcomeOK
		if err != nil {
			outcome = outcomeError
		}
		metrics.ModelCall(llm.ModelName(), outcome)
	}
	if err != nil {
		return "", err
	}

	logger.Debug("Model %s used %d tokens", llm.ModelName(), result.Usage.TotalTokens)
	return strings.TrimSpace(result.Text), nil
}

// recordDegraded makes a recovered model failure observable.
func recordDegraded(metrics driven.Metrics, stage string, err error) {
	logger.Warn("%s degraded: %v", stage, err)
	if metrics != nil {
		metrics.Degraded(stage)
	}
}

// cutLabel returns the text after "<label>:" when line starts with one of
// labels. The colon may be ASCII or full-width and labels match case-insensitively.
func cutLabel(line string, labels ...string) (string, bool) {
	for _, label := range labels {
		if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
			continue
		}
		rest := line[len(label):]
		r, size := utf8.DecodeRuneInString(rest)
		if size == 0 {
			continue
		}
		if width.Narrow.String(string(r)) == ":" {
			return strings.TrimSpace(rest[size:]), true
		}
	}
	return "", false
}

// splitTags splits a tag list on commas and whitespace and strips '#'.
// Full-width forms are narrowed first, so "ＡＩ，工具" yields [AI 工具].
func splitTags(s string) []string {
	var out []string
	for _, t := range tagSeparators.Split(width.Narrow.String(s), -1) {
		t = strings.Trim(strings.TrimSpace(t), "#")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
