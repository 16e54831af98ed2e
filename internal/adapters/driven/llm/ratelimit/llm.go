// Package ratelimit provides an LLMService decorator that throttles model
// calls with a token bucket.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultBurst allows a short run of calls before throttling starts.
// One pipeline run makes up to four calls.
const DefaultBurst = 4

// LLMService waits for a token before each Chat call.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter
}

// New wraps next so that Chat runs at most ratePerSecond times per second
// after an initial burst. A burst below 1 uses DefaultBurst.
func New(next driven.LLMService, ratePerSecond float64, burst int) *LLMService {
	if burst < 1 {
		burst = DefaultBurst
	}
	return &LLMService{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// Chat waits for the limiter and forwards the call.
func (s *LLMService) Chat(
	ctx context.Context,
	messages []driven.ChatMessage,
	opts driven.ChatOptions,
) (*driven.ChatResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return s.next.Chat(ctx, messages, opts)
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping is not throttled.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}
