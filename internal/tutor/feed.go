package tutor

import (
	"context"
	"errors"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/llm"
	"github.com/abhisek/lumen/internal/store"
)

// ExploreTopics are the default feed categories.
var ExploreTopics = []string{
	"Current Events",
	"Technology",
	"Science",
	"Pop Culture",
	"Gaming",
	"History",
	"AI",
	"Philosophy",
}

type feedOutput struct {
	Items []content.FeedItem `json:"feedItems"`
}

// Feed generates a batch of cards from recent news in topics, avoiding
// titles already shown. It is grounded with search.
func (s *Service) Feed(ctx context.Context, existing, topics []string) ([]content.FeedItem, error) {
	if len(topics) == 0 {
		topics = ExploreTopics
	}
	req := llm.Request{
		Messages:    userMessage(buildFeedMessage(existing, topics, s.cfg.FeedSize, s.now())),
		Schema:      FeedSchema,
		Grounding:   true,
		MaxTokens:   s.cfg.FeedMaxTokens,
		Temperature: s.cfg.Temperature,
	}
	out, _, err := generate[feedOutput](ctx, s, llm.PurposeFeed, req)
	if err != nil {
		return nil, err
	}
	return dedupFeed(out.Items, existing), nil
}

// FeedItem generates one card for a search query.
func (s *Service) FeedItem(ctx context.Context, query string) (content.FeedItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return content.FeedItem{}, errors.New("feed query is empty")
	}
	req := llm.Request{
		Messages:    userMessage(buildFeedItemMessage(query)),
		Schema:      FeedItemSchema,
		MaxTokens:   s.cfg.JudgeMaxTokens * 2,
		Temperature: s.cfg.Temperature,
	}
	item, _, err := generate[content.FeedItem](ctx, s, llm.PurposeFeedItem, req)
	return item, err
}

// MoreFeed generates one card per query concurrently, at most
// FeedConcurrency at a time. Results keep query order; the first failure
// cancels the rest.
func (s *Service) MoreFeed(ctx context.Context, queries []string) ([]content.FeedItem, error) {
	out := make([]content.FeedItem, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.FeedConcurrency, 1))
	for i, q := range queries {
		g.Go(func() error {
			item, err := s.FeedItem(ctx, q)
			if err != nil {
				return err
			}
			out[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// dedupFeed drops cards whose title repeats an earlier card or one in
// existing, compared case-insensitively.
func dedupFeed(items []content.FeedItem, existing []string) []content.FeedItem {
	seen := make(map[string]bool, len(existing)+len(items))
	for _, t := range existing {
		seen[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return slices.DeleteFunc(items, func(it content.FeedItem) bool {
		key := strings.ToLower(strings.TrimSpace(it.Title))
		if key == "" || seen[key] {
			return true
		}
		seen[key] = true
		return false
	})
}

// LoadFeed returns the cached feed, or nil when none is stored or the
// cache is corrupt.
func LoadFeed(ctx context.Context, st store.Store) []content.FeedItem {
	items, err := store.LoadJSON[[]content.FeedItem](ctx, st, store.KeyFeed)
	if err != nil {
		return nil
	}
	return items
}

// SaveFeed caches the feed.
func SaveFeed(ctx context.Context, st store.Store, items []content.FeedItem) error {
	return store.SaveJSON(ctx, st, store.KeyFeed, items)
}
