package domain

const unknownDescription = "Unknown"

// AIProvider identifies a language model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderDeepSeek is DeepSeek's OpenAI-compatible API.
	AIProviderDeepSeek AIProvider = "deepseek"

	// AIProviderKimi is Moonshot's OpenAI-compatible API.
	AIProviderKimi AIProvider = "kimi"

	// AIProviderMiniMax is MiniMax's OpenAI-compatible API.
	AIProviderMiniMax AIProvider = "minimax"

	// AIProviderGLM is Zhipu's OpenAI-compatible API.
	AIProviderGLM AIProvider = "glm"

	// AIProviderGemini is Google Gemini through its OpenAI-compatible endpoint.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic,
		AIProviderDeepSeek, AIProviderKimi, AIProviderMiniMax, AIProviderGLM, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p.IsValid() && p != AIProviderOllama
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// IsOpenAICompatible returns true if the provider speaks the OpenAI chat API.
func (p AIProvider) IsOpenAICompatible() bool {
	switch p {
	case AIProviderOpenAI, AIProviderDeepSeek, AIProviderKimi, AIProviderMiniMax, AIProviderGLM,
		AIProviderGemini:
		return true
	default:
		return false
	}
}

// APIKeyEnv returns the environment variable that overrides this provider's key.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderDeepSeek:
		return "DEEPSEEK_API_KEY"
	case AIProviderKimi:
		return "KIMI_API_KEY"
	case AIProviderMiniMax:
		return "MINIMAX_API_KEY"
	case AIProviderGLM:
		return "GLM_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderDeepSeek:
		return "DeepSeek (cloud, OpenAI-compatible)"
	case AIProviderKimi:
		return "Kimi / Moonshot (cloud, OpenAI-compatible)"
	case AIProviderMiniMax:
		return "MiniMax (cloud, OpenAI-compatible)"
	case AIProviderGLM:
		return "GLM / Zhipu (cloud, OpenAI-compatible)"
	case AIProviderGemini:
		return "Google Gemini (cloud, OpenAI-compatible)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string

	// RatePerSecond throttles model calls. Zero disables throttling.
	RatePerSecond float64
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// TagSettings controls the preset vocabulary.
type TagSettings struct {
	// AllowNew permits user tags outside the vocabulary to be added to it.
	AllowNew bool

	// PresetOverride replaces the stored vocabulary when non-empty.
	PresetOverride []string
}

// TelegramSettings holds channel publishing configuration.
type TelegramSettings struct {
	// BotToken authenticates the bot.
	BotToken string

	// ChannelID is "@name" for public channels or "-100..." for private ones.
	ChannelID string
}

// IsConfigured returns true if publishing is possible.
func (t TelegramSettings) IsConfigured() bool {
	return t.BotToken != "" && t.ChannelID != ""
}

// FetchSettings controls web page fetching.
type FetchSettings struct {
	// TimeoutSeconds bounds a single page fetch.
	TimeoutSeconds int
}

// ArchiveSettings configures the optional S3-compatible attachment archive.
type ArchiveSettings struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// IsConfigured returns true if attachments should be archived.
func (a ArchiveSettings) IsConfigured() bool {
	return a.Bucket != "" && a.Region != "" && a.AccessKeyID != "" && a.SecretAccessKey != ""
}

// PendingSettings configures where pending selections live.
type PendingSettings struct {
	// RedisAddr selects the Redis store when set; memory otherwise.
	RedisAddr string

	// TTLMinutes expires abandoned selections.
	TTLMinutes int
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM      LLMSettings
	Tags     TagSettings
	Telegram TelegramSettings
	Fetch    FetchSettings
	Archive  ArchiveSettings
	Pending  PendingSettings
}

// DefaultFetchTimeoutSeconds bounds page fetches when unset.
const DefaultFetchTimeoutSeconds = 30

// DefaultPendingTTLMinutes expires abandoned selections when unset.
const DefaultPendingTTLMinutes = 60

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users set it with 'kb settings llm'.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Tags: TagSettings{
			AllowNew: true,
		},
		Fetch: FetchSettings{
			TimeoutSeconds: DefaultFetchTimeoutSeconds,
		},
		Pending: PendingSettings{
			TTLMinutes: DefaultPendingTTLMinutes,
		},
	}
}

// DefaultPresetTags is the vocabulary used before the user curates one.
func DefaultPresetTags() []string {
	return []string{"AI", "Tools", "Article", "Tutorial", "Research", "Programming", "Product", "Design"}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderDeepSeek,
		AIProviderKimi,
		AIProviderMiniMax,
		AIProviderGLM,
		AIProviderGemini,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-20241022",
		AIProviderDeepSeek:  "deepseek-chat",
		AIProviderKimi:      "moonshot-v1-8k",
		AIProviderMiniMax:   "abab6.5s-chat",
		AIProviderGLM:       "glm-4-flash",
		AIProviderGemini:    "gemini-1.5-flash",
	}
}

// DefaultLLMBaseURLs returns base URLs for providers that are not the stock OpenAI endpoint.
func DefaultLLMBaseURLs() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:   "http://localhost:11434",
		AIProviderDeepSeek: "https://api.deepseek.com/v1",
		AIProviderKimi:     "https://api.moonshot.cn/v1",
		AIProviderMiniMax:  "https://api.minimax.chat/v1",
		AIProviderGLM:      "https://open.bigmodel.cn/api/paas/v4",
		AIProviderGemini:   "https://generativelanguage.googleapis.com/v1beta/openai",
	}
}
