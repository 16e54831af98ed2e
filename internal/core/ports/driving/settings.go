package driving

import "github.com/custodia-labs/kb-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with environment overrides applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error

	// SetTelegram configures the publishing channel.
	SetTelegram(botToken, channelID string) error

	// SetAllowNewTags toggles whether unseen tags join the vocabulary.
	SetAllowNewTags(allow bool) error

	// Validate checks that the configured settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
