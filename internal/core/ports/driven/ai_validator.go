package driven

import "github.com/custodia-labs/kb-cli/internal/core/domain"

// AIConfigValidator checks LLM settings when they are saved.
type AIConfigValidator interface {
	// ValidateLLM returns nil when no provider is set or the provider
	// answers a ping. Missing keys and unreachable providers wrap
	// domain.ErrLLMUnavailable.
	ValidateLLM(settings *domain.LLMSettings) error
}
