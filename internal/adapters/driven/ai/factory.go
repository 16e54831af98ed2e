// Package ai builds the configured language model adapter and checks it
// before settings are saved.
package ai

import (
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/kb-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/kb-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/kb-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/kb-cli/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// pingTimeout bounds the connectivity check run by ConfigValidator.
const pingTimeout = 5 * time.Second

// CreateLLMService returns the adapter for settings.Provider, or nil when
// no usable provider is configured. A positive RatePerSecond wraps the
// adapter in a throttling decorator.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	// Compatible providers fall back to their own endpoint and model.
	baseURL, model := settings.BaseURL, settings.Model
	if baseURL == "" {
		baseURL = domain.DefaultLLMBaseURLs()[settings.Provider]
	}
	if model == "" {
		model = domain.DefaultLLMModels()[settings.Provider]
	}

	var (
		svc driven.LLMService
		err error
	)
	switch p := settings.Provider; {
	case p == domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{BaseURL: baseURL, Model: model})
	case p == domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewLLMService(anthropicllm.Config{APIKey: settings.APIKey, BaseURL: baseURL, Model: model})
	case p.IsOpenAICompatible():
		svc, err = openaillm.NewLLMService(openaillm.LLMConfig{APIKey: settings.APIKey, BaseURL: baseURL, Model: model})
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", settings.Provider, err)
	}

	if settings.RatePerSecond > 0 {
		svc = ratelimit.New(svc, settings.RatePerSecond, 0)
	}
	return svc, nil
}
