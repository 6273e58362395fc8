package llm

import (
	"context"
	"time"

	"github.com/abhisek/lumen/internal/decode"
	"github.com/abhisek/lumen/internal/logger"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    *logger.Logger
}

// WithRetry wraps a Provider with retry logic. log may be nil.
func WithRetry(p Provider, cfg RetryConfig, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return decode.Retry(ctx, r.backoff(ctx), func(ctx context.Context) (*Response, error) {
		resp, err := r.inner.Generate(ctx, req)
		return resp, classifyRetry(err)
	})
}

// Stream retries only until the first delta has been delivered; after
// that the caller has already shown partial output and a retry would
// repeat it.
func (r *RetryProvider) Stream(ctx context.Context, req Request, onDelta func(string) error) (*Response, error) {
	return decode.Retry(ctx, r.backoff(ctx), func(ctx context.Context) (*Response, error) {
		emitted := false
		resp, err := Stream(ctx, r.inner, req, func(s string) error {
			emitted = true
			return onDelta(s)
		})
		if err != nil && emitted {
			return nil, decode.Permanent(err)
		}
		return resp, classifyRetry(err)
	})
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// classifyRetry stops the retry loop on permanent errors. Rate limits,
// outages, invalid output and network errors are retried.
func classifyRetry(err error) error {
	if err != nil && isPermanent(err) {
		return decode.Permanent(err)
	}
	return err
}

func (r *RetryProvider) backoff(ctx context.Context) decode.Backoff {
	b := r.config.Backoff()
	purpose := PurposeFrom(ctx)
	b.Notify = func(attempt int, err error, wait time.Duration) {
		r.log.Warn("llm call failed, retrying",
			"purpose", purpose,
			"attempt", attempt,
			"wait", wait.String(),
			"error", err.Error(),
		)
	}
	return b
}

// Backoff converts the config into a decode.Backoff.
func (c RetryConfig) Backoff() decode.Backoff {
	return decode.Backoff{
		MaxAttempts: c.MaxAttempts,
		InitialWait: c.InitialWait,
		MaxWait:     c.MaxWait,
		Multiplier:  c.Multiplier,
		Jitter:      c.Jitter,
	}
}
