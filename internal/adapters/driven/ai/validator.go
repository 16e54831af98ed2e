package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks an LLM configuration before it is relied on by
// 'kb post' and the TUI.
type ConfigValidator struct {
	timeout time.Duration
	create  func(*domain.LLMSettings) (driven.LLMService, error)
}

// NewConfigValidator returns a validator that pings the configured provider.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{timeout: pingTimeout, create: CreateLLMService}
}

// ValidateLLM reports why settings cannot produce summaries. An empty
// provider is valid: summaries are then skipped. A cloud provider with no
// key in the settings or its environment variable is an error rather than
// a silent skip.
func (v *ConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	if settings == nil || settings.Provider == "" {
		return nil
	}
	if !settings.Provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, settings.Provider)
	}
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" &&
		os.Getenv(settings.Provider.APIKeyEnv()) == "" {
		return fmt.Errorf("%w: %s needs an API key (set %s)",
			domain.ErrLLMUnavailable, settings.Provider.Description(), settings.Provider.APIKeyEnv())
	}

	svc, err := v.create(settings)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s unreachable: %w", domain.ErrLLMUnavailable, settings.Provider, err)
	}
	return nil
}
