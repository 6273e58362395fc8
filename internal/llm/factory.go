package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/metrics"
	"github.com/abhisek/lumen/internal/store"
)

// Deps are the collaborators the middleware chain reports to. All are
// optional.
type Deps struct {
	Events  store.EventRepo
	Metrics *metrics.Metrics
	Log     *logger.Logger
}

// NewProvider creates a Provider from configuration, wrapped with
// middleware: caller → retry → rate limit → metrics → logging → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	p := WithLogging(base, deps.Events, deps.Log)
	p = WithMetrics(p, deps.Metrics)
	p = WithRateLimit(p, cfg.RateLimit)
	p = WithRetry(p, cfg.Retry, deps.Log)
	return p, nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return base, nil
}
