package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitProvider is a decorator that spaces out requests with a token
// bucket. Each attempt, retries included, takes a token.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps p with a limiter. A zero RequestsPerMinute returns p
// unchanged.
func WithRateLimit(p Provider, cfg RateLimitConfig) Provider {
	if cfg.RequestsPerMinute <= 0 {
		return p
	}
	burst := max(cfg.Burst, 1)
	limit := rate.Limit(float64(cfg.RequestsPerMinute) / 60)
	return &RateLimitProvider{inner: p, limiter: rate.NewLimiter(limit, burst)}
}

func (l *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.inner.Generate(ctx, req)
}

func (l *RateLimitProvider) Stream(ctx context.Context, req Request, onDelta func(string) error) (*Response, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return Stream(ctx, l.inner, req, onDelta)
}

func (l *RateLimitProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *RateLimitProvider) wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}
