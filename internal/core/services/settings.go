package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMRate          = "llm.rate_per_second"
	keyTagsAllowNew     = "tags.allow_new"
	keyTelegramToken    = "telegram.bot_token"
	keyTelegramChannel  = "telegram.channel_id"
	keyFetchTimeout     = "fetch.timeout_seconds"
	keyArchiveBucket    = "archive.s3.bucket"
	keyArchiveRegion    = "archive.s3.region"
	keyArchiveEndpoint  = "archive.s3.endpoint"
	keyArchiveAccessKey = "archive.s3.access_key_id"
	keyArchiveSecret    = "archive.s3.secret_access_key"
	keyArchivePathStyle = "archive.s3.use_path_style"
	keyPendingRedisAddr = "pending.redis.addr"
	keyPendingTTL       = "pending.ttl_minutes"
)

// Environment overrides applied on top of the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvTelegramToken   = "KB_TELEGRAM_BOT_TOKEN"
	EnvTelegramChannel = "KB_TELEGRAM_CHANNEL_ID"
	EnvLLMProvider     = "KB_LLM_PROVIDER"
	EnvPresetTags      = "KB_PRESET_TAGS"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings with environment overrides applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	applyEnvOverrides(settings)
	return settings, nil
}

// stored reads settings from the config store only.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:      s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:         s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:       s.configStore.GetString(keyLLMBaseURL), // No default - empty uses the provider default
			APIKey:        s.configStore.GetString(keyLLMAPIKey),
			RatePerSecond: s.configStore.GetFloat(keyLLMRate),
		},
		Tags: domain.TagSettings{
			AllowNew: s.getBool(keyTagsAllowNew, defaults.Tags.AllowNew),
		},
		Telegram: domain.TelegramSettings{
			BotToken:  s.configStore.GetString(keyTelegramToken),
			ChannelID: s.configStore.GetString(keyTelegramChannel),
		},
		Fetch: domain.FetchSettings{
			TimeoutSeconds: s.getInt(keyFetchTimeout, defaults.Fetch.TimeoutSeconds),
		},
		Archive: domain.ArchiveSettings{
			Bucket:          s.configStore.GetString(keyArchiveBucket),
			Region:          s.configStore.GetString(keyArchiveRegion),
			Endpoint:        s.configStore.GetString(keyArchiveEndpoint),
			AccessKeyID:     s.configStore.GetString(keyArchiveAccessKey),
			SecretAccessKey: s.configStore.GetString(keyArchiveSecret),
			UsePathStyle:    s.getBool(keyArchivePathStyle, false),
		},
		Pending: domain.PendingSettings{
			RedisAddr:  s.configStore.GetString(keyPendingRedisAddr),
			TTLMinutes: s.getInt(keyPendingTTL, defaults.Pending.TTLMinutes),
		},
	}
}

// applyEnvOverrides lets the environment win over the config file.
// A provider API key variable only applies to the selected provider.
func applyEnvOverrides(settings *domain.AppSettings) {
	if v := os.Getenv(EnvTelegramToken); v != "" {
		settings.Telegram.BotToken = v
	}
	if v := os.Getenv(EnvTelegramChannel); v != "" {
		settings.Telegram.ChannelID = v
	}
	if v := os.Getenv(EnvLLMProvider); v != "" {
		provider := domain.AIProvider(strings.ToLower(strings.TrimSpace(v)))
		if provider.IsValid() && provider != settings.LLM.Provider {
			settings.LLM.Provider = provider
			settings.LLM.Model = domain.DefaultLLMModels()[provider]
			settings.LLM.BaseURL = ""
			settings.LLM.APIKey = ""
		}
	}
	if env := settings.LLM.Provider.APIKeyEnv(); env != "" {
		if v := os.Getenv(env); v != "" {
			settings.LLM.APIKey = v
		}
	}
	if v := os.Getenv(EnvPresetTags); v != "" {
		var presets []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				presets = append(presets, t)
			}
		}
		settings.Tags.PresetOverride = presets
	}
}

// savedField is one config entry written by Save. Secrets and optional
// values are skipped when empty so a blank form never erases them.
type savedField struct {
	key       string
	value     any
	skipEmpty bool
}

func savedFields(settings *domain.AppSettings) []savedField {
	return []savedField{
		{keyLLMProvider, settings.LLM.Provider.String(), false},
		{keyLLMModel, settings.LLM.Model, false},
		{keyLLMBaseURL, settings.LLM.BaseURL, false},
		{keyLLMAPIKey, settings.LLM.APIKey, true},
		{keyLLMRate, settings.LLM.RatePerSecond, true},
		{keyTagsAllowNew, settings.Tags.AllowNew, false},
		{keyTelegramToken, settings.Telegram.BotToken, true},
		{keyTelegramChannel, settings.Telegram.ChannelID, false},
		{keyFetchTimeout, settings.Fetch.TimeoutSeconds, false},
		{keyArchiveBucket, settings.Archive.Bucket, true},
		{keyArchiveRegion, settings.Archive.Region, true},
		{keyArchiveEndpoint, settings.Archive.Endpoint, true},
		{keyArchiveAccessKey, settings.Archive.AccessKeyID, true},
		{keyArchiveSecret, settings.Archive.SecretAccessKey, true},
		{keyPendingRedisAddr, settings.Pending.RedisAddr, true},
		{keyPendingTTL, settings.Pending.TTLMinutes, false},
	}
}

// Save persists application settings.
// Environment overrides are never written back.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	for _, f := range savedFields(settings) {
		if f.skipEmpty && isZero(f.value) {
			continue
		}
		if err := s.configStore.Set(f.key, f.value); err != nil {
			return fmt.Errorf("save %s: %w", f.key, err)
		}
	}
	return nil
}

func isZero(v any) bool {
	switch v := v.(type) {
	case string:
		return v == ""
	case float64:
		return v == 0
	case int:
		return v == 0
	}
	return false
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// The key may come from the provider's environment variable instead.
	if provider.RequiresAPIKey() && apiKey == "" && os.Getenv(provider.APIKeyEnv()) == "" {
		return fmt.Errorf("%w: API key required for %s (or set %s)", domain.ErrInvalidInput, provider, provider.APIKeyEnv())
	}

	settings := s.stored()
	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	// Empty base URL means the provider default
	settings.LLM.BaseURL = baseURL
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetTelegram configures the publishing channel.
func (s *SettingsService) SetTelegram(botToken, channelID string) error {
	if botToken == "" || channelID == "" {
		return fmt.Errorf("%w: bot token and channel ID are required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(channelID, "@") && !strings.HasPrefix(channelID, "-") {
		return fmt.Errorf("%w: channel ID must start with @ or -100", domain.ErrInvalidInput)
	}

	settings := s.stored()
	settings.Telegram.BotToken = botToken
	settings.Telegram.ChannelID = channelID
	return s.Save(settings)
}

// SetAllowNewTags toggles whether unseen tags join the vocabulary.
func (s *SettingsService) SetAllowNewTags(allow bool) error {
	if err := s.configStore.Set(keyTagsAllowNew, allow); err != nil {
		return fmt.Errorf("save tags allow_new: %w", err)
	}
	return nil
}

// Validate checks that the configured settings are usable.
// An unset LLM is valid; a half-configured one is not.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider %q requires an API key (set %s or run 'kb settings llm')",
			settings.LLM.Provider, settings.LLM.Provider.APIKeyEnv())
	}
	if (settings.Telegram.BotToken == "") != (settings.Telegram.ChannelID == "") {
		return fmt.Errorf("telegram needs both bot_token and channel_id")
	}
	if settings.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %d", settings.Fetch.TimeoutSeconds)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
