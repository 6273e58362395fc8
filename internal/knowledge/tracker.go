// Package knowledge tracks per-concept mastery across sessions.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/store"
)

// Tracker owns the knowledge graph. It is safe for concurrent use; updates
// to the same concept apply in arrival order.
type Tracker struct {
	mu    sync.Mutex
	graph Graph
	store store.Store
	log   *logger.Logger
	now   func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger used for load warnings.
func WithLogger(l *logger.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// NewTracker returns an empty tracker persisting to s. s may be nil for
// an in-memory tracker.
func NewTracker(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		graph: make(Graph),
		store: s,
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Update records one answer for a concept and returns its new state. The
// first touch of a concept starts it as new with zero strength.
func (t *Tracker) Update(conceptID string, correct bool) Item {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.graph[conceptID]
	if !ok {
		item = Item{ID: conceptID, Status: StatusNew}
	}
	item = apply(item, correct, t.now())
	t.graph[conceptID] = item
	return item
}

// Get returns the state of one concept.
func (t *Tracker) Get(conceptID string) (Item, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item, ok := t.graph[conceptID]
	return item, ok
}

// Graph returns a copy of the whole graph.
func (t *Tracker) Graph() Graph {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.graph)
}

// Len returns the number of tracked concepts.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.graph)
}

// Groups partitions the graph for display. New concepts are shown with
// the ones in progress.
type Groups struct {
	Struggling []Item
	InProgress []Item
	Mastered   []Item
}

// ByStatus groups concepts by status, each group sorted by ID.
func (t *Tracker) ByStatus() Groups {
	t.mu.Lock()
	defer t.mu.Unlock()

	var g Groups
	for _, id := range slices.Sorted(maps.Keys(t.graph)) {
		item := t.graph[id]
		switch item.Status {
		case StatusStruggling:
			g.Struggling = append(g.Struggling, item)
		case StatusMastered:
			g.Mastered = append(g.Mastered, item)
		default:
			g.InProgress = append(g.InProgress, item)
		}
	}
	return g
}

// Load replaces the in-memory graph with the stored one. Missing data
// leaves the graph empty; corrupt data is discarded with a warning.
func (t *Tracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	g, err := store.LoadJSON[Graph](ctx, t.store, store.KeyKnowledgeGraph)
	switch {
	case errors.Is(err, store.ErrNotFound):
		g = make(Graph)
	case errors.Is(err, store.ErrCorrupt):
		t.log.Warn("discarding corrupt knowledge graph", "error", err.Error())
		g = make(Graph)
	case err != nil:
		return fmt.Errorf("load knowledge graph: %w", err)
	}
	if g == nil {
		g = make(Graph)
	}

	t.mu.Lock()
	t.graph = g
	t.mu.Unlock()
	return nil
}

// Save persists the graph.
func (t *Tracker) Save(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	g := t.Graph()
	if err := store.SaveJSON(ctx, t.store, store.KeyKnowledgeGraph, g); err != nil {
		return fmt.Errorf("save knowledge graph: %w", err)
	}
	return nil
}

// Reset empties the graph and removes it from storage.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	t.graph = make(Graph)
	t.mu.Unlock()

	if t.store == nil {
		return nil
	}
	if err := t.store.Delete(ctx, store.KeyKnowledgeGraph); err != nil {
		return fmt.Errorf("reset knowledge graph: %w", err)
	}
	return nil
}
