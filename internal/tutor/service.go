// Package tutor generates lessons, curricula, articles and feed cards, and
// judges learner answers, on top of an llm.Provider.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/decode"
	"github.com/abhisek/lumen/internal/llm"
	"github.com/abhisek/lumen/internal/logger"
)

// Config holds generation settings.
type Config struct {
	// Questions is how many questions each section must have.
	Questions int

	Temperature float64

	LessonMaxTokens     int
	CurriculumMaxTokens int
	ArticleMaxTokens    int
	JudgeMaxTokens      int
	FeedMaxTokens       int
	ChatMaxTokens       int

	// FeedSize is the number of cards in a feed batch.
	FeedSize int

	// FeedConcurrency caps parallel single-card requests.
	FeedConcurrency int

	// Backoff governs re-asking when a response decodes but fails
	// validation. Transport errors are retried by the provider chain.
	Backoff decode.Backoff
}

// DefaultConfig returns sensible defaults for generation.
func DefaultConfig() Config {
	return Config{
		Questions:           7,
		Temperature:         0.7,
		LessonMaxTokens:     16384,
		CurriculumMaxTokens: 65536,
		ArticleMaxTokens:    8192,
		JudgeMaxTokens:      512,
		FeedMaxTokens:       8192,
		ChatMaxTokens:       2048,
		FeedSize:            8,
		FeedConcurrency:     4,
		Backoff:             decode.DefaultBackoff(),
	}
}

// Service is the generation layer. It is safe for concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// New creates a tutoring service.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{provider: provider, cfg: cfg, log: log, now: time.Now}
}

// Provider returns the underlying provider.
func (s *Service) Provider() llm.Provider { return s.provider }

// generate sends req and decodes the response into a T. A response that
// fails to decode or validate is requested again under cfg.Backoff; a
// provider error is returned as is.
func generate[T any](ctx context.Context, s *Service, purpose string, req llm.Request) (T, []content.Source, error) {
	ctx = llm.WithPurpose(ctx, purpose)

	type result struct {
		val     T
		sources []content.Source
	}
	b := s.cfg.Backoff
	if b.MaxAttempts == 0 {
		b = decode.DefaultBackoff()
	}
	b.Notify = func(attempt int, err error, wait time.Duration) {
		s.log.Warn("response rejected, asking again",
			"purpose", purpose, "attempt", attempt, "wait", wait.String(), "error", err)
	}

	r, err := decode.Retry(ctx, b, func(ctx context.Context) (result, error) {
		resp, err := s.provider.Generate(ctx, req)
		if err != nil {
			return result{}, decode.Permanent(err)
		}
		v, err := decodeResponse[T](req, resp)
		if err != nil {
			return result{}, err
		}
		return result{val: v, sources: toSources(resp.Sources)}, nil
	})
	if err != nil {
		var zero T
		return zero, nil, fmt.Errorf("%s: %w", purpose, err)
	}
	return r.val, r.sources, nil
}

func decodeResponse[T any](req llm.Request, resp *llm.Response) (T, error) {
	if req.Schema != nil {
		return decode.DecodeWith[T](resp.Text(), req.Schema.Name, req.Schema.Definition)
	}
	return decode.Decode[T](resp.Text())
}

func toSources(in []llm.Source) []content.Source {
	if len(in) == 0 {
		return nil
	}
	out := make([]content.Source, len(in))
	for i, s := range in {
		out[i] = content.Source{URI: s.URI, Title: s.Title}
	}
	return out
}

func userMessage(text string) []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Content: text}}
}

// UserMessage returns the message to show for a generation error.
func UserMessage(err error) string {
	var de *decode.DecodeError
	if errors.As(err, &de) {
		return de.UserMessage()
	}
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return decode.InvalidResponseMessage
	}
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		return "The AI service is busy right now. Please wait a moment and try again."
	}
	var unavailable *llm.ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		return "The AI service could not be reached. Check your connection and API key, then try again."
	}
	return "Something went wrong while generating content. Please try again."
}
