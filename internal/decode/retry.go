package decode

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff is an exponential retry policy. MaxAttempts counts the first
// call; the wait before attempt n+1 is InitialWait*Multiplier^n, capped at
// MaxWait and spread by ±Jitter.
type Backoff struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	Jitter      float64

	// Notify, when set, is called before each wait.
	Notify func(attempt int, err error, wait time.Duration)
}

// DefaultBackoff makes three retries after the first call, waiting 1s, 2s
// then 4s.
func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: 4,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// RetryDelayer is implemented by errors that carry a server-requested
// delay, such as rate-limit responses.
type RetryDelayer interface {
	RetryDelay() time.Duration
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Retry returns the wrapped
// error unchanged.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry calls fn until it succeeds, returns a Permanent error, the context
// ends, or the attempts run out. The last error is returned.
func Retry[T any](ctx context.Context, b Backoff, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := max(b.MaxAttempts, 1)

	var lastErr error
	for attempt := range attempts {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		wait := b.Delay(attempt, err)
		if b.Notify != nil {
			b.Notify(attempt+1, err, wait)
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return zero, ctx.Err()
		case <-t.C:
		}
	}
	return zero, lastErr
}

// Delay computes the wait after the given zero-based attempt.
func (b Backoff) Delay(attempt int, err error) time.Duration {
	var d RetryDelayer
	if errors.As(err, &d) && d.RetryDelay() > 0 {
		return d.RetryDelay()
	}

	mult := b.Multiplier
	if mult <= 0 {
		mult = 2
	}
	wait := float64(b.InitialWait) * math.Pow(mult, float64(attempt))
	if b.MaxWait > 0 && wait > float64(b.MaxWait) {
		wait = float64(b.MaxWait)
	}
	if b.Jitter > 0 {
		wait += wait * b.Jitter * (2*rand.Float64() - 1)
	}
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
