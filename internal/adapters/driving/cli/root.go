// Package cli provides the kb command-line interface.
package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// verbose enables debug logging for every command.
var verbose bool

// Services injected by the composition root.
var (
	settingsService  driving.SettingsService
	classifyService  driving.ClassifyService
	pipelineService  driving.PipelineService
	selectionService driving.SelectionService
	tagService       driving.TagService
	publishService   driving.PublishService
	telegramCheck    func(ctx context.Context, settings domain.TelegramSettings) error
	metricsHandler   http.Handler
	promptWatcher    Watcher
)

// Watcher runs a background reload loop until ctx is cancelled.
type Watcher interface {
	Run(ctx context.Context)
}

// Services aggregates everything the commands need.
type Services struct {
	Settings  driving.SettingsService
	Classify  driving.ClassifyService
	Pipeline  driving.PipelineService
	Selection driving.SelectionService
	Tags      driving.TagService
	Publish   driving.PublishService

	// TelegramCheck verifies a bot token and channel without posting.
	TelegramCheck func(ctx context.Context, settings domain.TelegramSettings) error

	// Metrics serves Prometheus counters. Optional.
	Metrics http.Handler

	// PromptWatcher reloads prompts in long-running commands. Optional.
	PromptWatcher Watcher
}

var rootCmd = &cobra.Command{
	Use:   "kb",
	Short: "Capture links, files and notes into a bilingual Telegram channel",
	Long: `kb turns a URL, a local file or a pasted note into a bilingual
post for your Telegram knowledge channel.

Each input is classified, extracted, summarised in Chinese and English,
and tagged against your preset vocabulary before you confirm it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the core services.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	classifyService = s.Classify
	pipelineService = s.Pipeline
	selectionService = s.Selection
	tagService = s.Tags
	publishService = s.Publish
	telegramCheck = s.TelegramCheck
	metricsHandler = s.Metrics
	promptWatcher = s.PromptWatcher
}

// SetVersion sets the version reported by 'kb version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, so commands stop when it is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
