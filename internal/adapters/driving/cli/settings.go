package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, the Telegram channel and the tag vocabulary.

Settings are stored in ~/.kb/config.toml. Environment variables such as
KB_TELEGRAM_BOT_TOKEN override the stored values for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the model used for bilingual summaries and tag suggestions.`,
	RunE:  runSettingsLLM,
}

var (
	telegramToken   string
	telegramChannel string
	telegramTest    bool
)

var settingsTelegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Configure the Telegram channel",
	Long: `Set the bot token and channel that posts are published to.

The channel is "@name" for public channels or the numeric "-100..." id
for private ones. The bot must be an administrator of the channel.`,
	RunE: runSettingsTelegram,
}

var allowNewTags string

var settingsTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Configure the tag vocabulary",
	Long:  `Control whether tags typed in the picker are added to the preset vocabulary.`,
	RunE:  runSettingsTags,
}

func init() {
	settingsTelegramCmd.Flags().StringVar(&telegramToken, "token", "", "bot token from @BotFather")
	settingsTelegramCmd.Flags().StringVar(&telegramChannel, "channel", "", "channel id, @name or -100...")
	settingsTelegramCmd.Flags().BoolVar(&telegramTest, "test", false, "check the bot can reach the channel")
	settingsTagsCmd.Flags().StringVar(&allowNewTags, "allow-new", "", "add new tags to the vocabulary (true/false)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsTelegramCmd)
	settingsCmd.AddCommand(settingsTagsCmd)
	rootCmd.AddCommand(settingsCmd)
}

// section is one bracketed block of 'kb settings show'.
type section struct {
	name string
	rows [][2]string
}

func (s *section) add(label, value string) {
	s.rows = append(s.rows, [2]string{label, value})
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	llm := section{name: "LLM"}
	llm.add("Provider", settings.LLM.Provider.Description())
	llm.add("Model", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		llm.add("Base URL", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		llm.add("API Key", secret(settings.LLM.APIKey))
	}
	if settings.LLM.RatePerSecond > 0 {
		llm.add("Rate", fmt.Sprintf("%.2f/s", settings.LLM.RatePerSecond))
	}
	llm.add("Status", configuredStatus(settings.LLM.IsConfigured()))

	telegram := section{name: "Telegram"}
	telegram.add("Bot Token", secret(settings.Telegram.BotToken))
	telegram.add("Channel", orNotSet(settings.Telegram.ChannelID))
	telegram.add("Status", configuredStatus(settings.Telegram.IsConfigured()))

	tags := section{name: "Tags"}
	tags.add("Allow new", yesNo(settings.Tags.AllowNew))
	if len(settings.Tags.PresetOverride) > 0 {
		tags.add("Override", strings.Join(settings.Tags.PresetOverride, ", "))
	}

	fetch := section{name: "Fetch"}
	fetch.add("Timeout", fmt.Sprintf("%ds", settings.Fetch.TimeoutSeconds))

	archive := section{name: "Archive"}
	if a := settings.Archive; a.IsConfigured() {
		archive.add("Bucket", fmt.Sprintf("%s (%s)", a.Bucket, a.Region))
		if a.Endpoint != "" {
			archive.add("Endpoint", a.Endpoint)
		}
	} else {
		archive.add("Status", configuredStatus(false))
	}

	pending := section{name: "Pending"}
	if addr := settings.Pending.RedisAddr; addr != "" {
		pending.add("Store", "redis ("+addr+")")
	} else {
		pending.add("Store", "sqlite")
	}
	pending.add("TTL", fmt.Sprintf("%dm", settings.Pending.TTLMinutes))

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, sec := range []section{llm, telegram, tags, fetch, archive, pending} {
		cmd.Printf("[%s]\n", sec.name)
		for _, row := range sec.rows {
			cmd.Printf("  %s: %s\n", row[0], row[1])
		}
		cmd.Println()
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'kb settings llm' or 'kb settings telegram' to fix configuration issues.")
		return nil
	}
	cmd.Println("Configuration is valid.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(stdin)
	return configureLLMProvider(cmd, reader)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	defaultURL := domain.DefaultLLMBaseURLs()[selectedProvider]
	var baseURL string
	if defaultURL != "" {
		cmd.Printf("Enter base URL [%s]: ", defaultURL)
		baseURL = readLine(reader)
		if baseURL == "" {
			baseURL = defaultURL
		}
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Printf("Enter API key (or set %s): ", selectedProvider.APIKeyEnv())
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" && os.Getenv(selectedProvider.APIKeyEnv()) == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey, baseURL); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsTelegram(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	token, channel := telegramToken, telegramChannel
	if token == "" && channel == "" && !telegramTest {
		reader := bufio.NewReader(stdin)
		cmd.Print("Enter bot token (blank keeps current): ")
		token = readPassword(reader)
		cmd.Println()
		prompt := "Enter channel id"
		if current.Telegram.ChannelID != "" {
			prompt += " [" + current.Telegram.ChannelID + "]"
		}
		cmd.Print(prompt + ": ")
		channel = readLine(reader)
	}
	if token == "" {
		token = current.Telegram.BotToken
	}
	if channel == "" {
		channel = current.Telegram.ChannelID
	}

	if token != current.Telegram.BotToken || channel != current.Telegram.ChannelID {
		if err := settingsService.SetTelegram(token, channel); err != nil {
			return fmt.Errorf("failed to configure telegram: %w", err)
		}
		cmd.Printf("Telegram channel configured: %s\n", channel)
	}

	if !telegramTest {
		return nil
	}
	if telegramCheck == nil {
		return errors.New("telegram check not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.AddSecret(token)
	cmd.Print("Checking bot and channel... ")
	if err := telegramCheck(ctx, domain.TelegramSettings{BotToken: token, ChannelID: channel}); err != nil {
		cmd.Printf("FAILED: %s\n", logger.Mask(err.Error()))
		return fmt.Errorf("telegram check failed: %w", err)
	}
	cmd.Println("OK")
	return nil
}

func runSettingsTags(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if allowNewTags == "" {
		return runSettingsShow(cmd, nil)
	}

	allow, err := strconv.ParseBool(allowNewTags)
	if err != nil {
		return fmt.Errorf("%w: --allow-new must be true or false", domain.ErrInvalidInput)
	}
	if err := settingsService.SetAllowNewTags(allow); err != nil {
		return fmt.Errorf("failed to save tag settings: %w", err)
	}
	cmd.Printf("Allow new tags: %s\n", yesNo(allow))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal, else a plain line.
func readPassword(reader *bufio.Reader) string {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

// secret shows the first and last four characters of a credential.
func secret(v string) string {
	switch {
	case v == "":
		return "(not set)"
	case len(v) <= 8:
		return "****"
	}
	return v[:4] + "..." + v[len(v)-4:]
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
