package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/kb-cli/internal/adapters/driven/ai"
	s3archive "github.com/custodia-labs/kb-cli/internal/adapters/driven/archive/s3"
	"github.com/custodia-labs/kb-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kb-cli/internal/adapters/driven/publisher/telegram"
	"github.com/custodia-labs/kb-cli/internal/adapters/driven/storage/memory"
	redisstore "github.com/custodia-labs/kb-cli/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/kb-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kb-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/kb-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/kb-cli/internal/connectors/web"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/core/services"
	"github.com/custodia-labs/kb-cli/internal/logger"
	"github.com/custodia-labs/kb-cli/internal/metrics"
	"github.com/custodia-labs/kb-cli/internal/normalisers"
	htmlnorm "github.com/custodia-labs/kb-cli/internal/normalisers/html"
	"github.com/custodia-labs/kb-cli/internal/normalisers/image"
	"github.com/custodia-labs/kb-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/kb-cli/internal/normalisers/plaintext"
)

// wire builds every service from the settings in dir ($KB_HOME or ~/.kb
// when empty). Optional backends that fail to start are logged and skipped.
func wire(ctx context.Context, dir string) (*cli.Services, func(), error) {
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}
	logger.AddSecret(settings.Telegram.BotToken)
	logger.AddSecret(settings.LLM.APIKey)
	logger.AddSecret(settings.Archive.SecretAccessKey)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	m := metrics.New()

	promptDir := filepath.Join(dir, "prompts")
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open prompts: %w", err)
	}

	vocabulary, err := file.NewVocabularyStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open vocabulary: %w", err)
	}

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM disabled: %v", err)
	}
	if llm != nil {
		closers = append(closers, func() { _ = llm.Close() })
	}

	registry := normalisers.NewRegistry(
		plaintext.New(),
		htmlnorm.New(),
		pdf.New(),
		image.New(),
	)
	fetchTimeout := time.Duration(settings.Fetch.TimeoutSeconds) * time.Second
	webFetcher := web.New(registry, fetchTimeout)
	fileExtractor := filesystem.New(registry)

	tagService := services.NewTagService(vocabulary, llm, services.TagOptions{
		AllowNew:       settings.Tags.AllowNew,
		PresetOverride: settings.Tags.PresetOverride,
	})
	tagService.SetPromptStore(prompts)
	tagService.SetMetrics(m)

	summaryService := services.NewSummaryService(llm)
	summaryService.SetPromptStore(prompts)
	summaryService.SetMetrics(m)

	classifier := services.NewClassifier()
	pipeline := services.NewPipelineService(classifier, webFetcher, fileExtractor, registry, summaryService, tagService)
	pipeline.SetMetrics(m)

	publishService := services.NewPublishService(newPublisher(settings.Telegram))
	publishService.SetMetrics(m)
	if settings.Archive.IsConfigured() {
		archive, err := s3archive.New(ctx, settings.Archive)
		if err != nil {
			logger.Warn("Attachment archive disabled: %v", err)
		} else {
			publishService.SetArchive(archive)
		}
	}

	pending, closePending := newPendingStore(ctx, dir, settings.Pending)
	closers = append(closers, closePending)

	selection := services.NewSelectionService(pending, tagService, publishService)

	return &cli.Services{
		Settings:      settingsService,
		Classify:      classifier,
		Pipeline:      pipeline,
		Selection:     selection,
		Tags:          tagService,
		Publish:       publishService,
		TelegramCheck: checkTelegram,
		Metrics:       m.Handler(),
		PromptWatcher: &promptWatcher{store: prompts, dir: promptDir},
	}, cleanup, nil
}

// newPublisher returns nil when the channel is not configured, which
// makes PublishService report the publisher as unavailable.
func newPublisher(settings domain.TelegramSettings) driven.Publisher {
	if !settings.IsConfigured() {
		return nil
	}
	p, err := telegram.New(telegram.Config{BotToken: settings.BotToken, ChannelID: settings.ChannelID})
	if err != nil {
		logger.Warn("Telegram disabled: %v", err)
		return nil
	}
	return p
}

// checkTelegram backs 'kb settings telegram --test'.
func checkTelegram(ctx context.Context, settings domain.TelegramSettings) error {
	p, err := telegram.New(telegram.Config{BotToken: settings.BotToken, ChannelID: settings.ChannelID})
	if err != nil {
		return err
	}
	return p.CheckChannel(ctx)
}

// newPendingStore uses Redis when an address is configured and reachable,
// the SQLite database in dir otherwise, and process memory when neither
// opens.
func newPendingStore(ctx context.Context, dir string, settings domain.PendingSettings) (driven.PendingStore, func()) {
	ttl := time.Duration(settings.TTLMinutes) * time.Minute
	if settings.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return redisstore.NewPendingStore(client, ttl), func() { _ = client.Close() }
		}
		logger.Warn("Redis at %s unreachable, using the selection database: %v", settings.RedisAddr, err)
		_ = client.Close()
	}

	store, err := sqlite.NewStore(dir)
	if err != nil {
		logger.Warn("Selection database unavailable, keeping selections in memory: %v", err)
		return memory.NewPendingStore(ttl), func() {}
	}
	return store.PendingStore(ttl), func() { _ = store.Close() }
}

// promptWatcher creates the prompt directory and starts watching it only
// when a long-running command asks for it.
type promptWatcher struct {
	store driven.PromptStore
	dir   string
}

// Run watches until ctx is cancelled. Failures leave prompts static.
func (w *promptWatcher) Run(ctx context.Context) {
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		logger.Warn("Prompt reload disabled: %v", err)
		return
	}
	watcher, err := file.NewPromptWatcher(w.store, w.dir)
	if err != nil {
		logger.Warn("Prompt reload disabled: %v", err)
		return
	}
	watcher.Run(ctx)
}
