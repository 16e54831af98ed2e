// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService is the language model collaborator used for bilingual
// summaries and tag suggestions. It is optional: when nil, summaries and
// suggestions degrade to empty results.
//
// Implementations include:
//   - OpenAI and OpenAI-compatible APIs (DeepSeek, Kimi, MiniMax, GLM, Gemini)
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Chat sends role-tagged messages and returns the reply text with usage counters.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// ChatResult is a model reply.
type ChatResult struct {
	// Text is the reply content.
	Text string

	// Usage holds token counters when the provider reports them.
	Usage Usage
}

// Usage counts tokens consumed by one call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
