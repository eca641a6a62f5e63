package llm

import (
	"context"
	"fmt"

	"github.com/abiral/quizforge/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and request-logging middleware.
func NewProvider(ctx context.Context, cfg Config, events store.RequestLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller → retry → logging → base.
	logged := WithLogging(base, events)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a Provider from QUIZFORGE_* env configuration,
// falling back to API-key discovery when no provider is selected explicitly.
func NewProviderFromEnv(ctx context.Context, events store.RequestLog) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
