// Package history keeps the most recent finished lessons and curricula so
// they can be replayed.
package history

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/store"
)

// MaxItems is how many entries are kept.
const MaxItems = 10

// Kind says what an entry replays.
type Kind string

const (
	KindCurriculum Kind = "curriculum"
	KindLesson     Kind = "lesson"
)

// Item is one history entry. Curriculum is set for KindCurriculum; Lesson
// and Difficulty for KindLesson.
type Item struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Timestamp  int64               `json:"timestamp"`
	Kind       Kind                `json:"type"`
	Curriculum *content.Curriculum `json:"curriculum,omitempty"`
	Lesson     *content.Section    `json:"lessonData,omitempty"`
	Difficulty content.Difficulty  `json:"difficulty,omitempty"`
}

// Time returns the entry timestamp.
func (it Item) Time() time.Time { return time.UnixMilli(it.Timestamp) }

var whitespace = regexp.MustCompile(`\s+`)

func itemID(title string, now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + whitespace.ReplaceAllString(title, "-")
}

// NewLesson builds an entry for a finished single lesson.
func NewLesson(sec *content.Section, d content.Difficulty, now time.Time) Item {
	return Item{
		ID:         itemID(sec.Title, now),
		Title:      sec.Title,
		Timestamp:  now.UnixMilli(),
		Kind:       KindLesson,
		Lesson:     sec,
		Difficulty: d,
	}
}

// NewCurriculum builds an entry for a completed curriculum.
func NewCurriculum(c *content.Curriculum, now time.Time) Item {
	return Item{
		ID:         itemID(c.Title, now),
		Title:      c.Title,
		Timestamp:  now.UnixMilli(),
		Kind:       KindCurriculum,
		Curriculum: c,
	}
}

// History is the bounded, title-unique list of entries, newest first. It
// is safe for concurrent use.
type History struct {
	mu    sync.Mutex
	items []Item
	store store.Store
	log   *logger.Logger
}

// New returns an empty history persisting to s. s may be nil.
func New(s store.Store, log *logger.Logger) *History {
	if log == nil {
		log = logger.Nop()
	}
	return &History{store: s, log: log}
}

// Insert puts it first, replacing any entry with the same title, and
// drops the oldest entries beyond MaxItems.
func (h *History) Insert(it Item) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Item, 0, len(h.items)+1)
	out = append(out, it)
	for _, old := range h.items {
		if old.Title != it.Title {
			out = append(out, old)
		}
	}
	if len(out) > MaxItems {
		out = out[:MaxItems]
	}
	h.items = out
}

// List returns the entries, newest first.
func (h *History) List() []Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.items)
}

// Get returns the entry with the given id.
func (h *History) Get(id string) (Item, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := slices.IndexFunc(h.items, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return Item{}, false
	}
	return h.items[i], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Load replaces the entries with the stored list. Corrupt data is
// discarded with a warning.
func (h *History) Load(ctx context.Context) error {
	if h.store == nil {
		return nil
	}
	items, err := store.LoadJSON[[]Item](ctx, h.store, store.KeyHistory)
	switch {
	case errors.Is(err, store.ErrNotFound):
		items = nil
	case errors.Is(err, store.ErrCorrupt):
		h.log.Warn("discarding corrupt history", "error", err.Error())
		items = nil
	case err != nil:
		return fmt.Errorf("load history: %w", err)
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	h.mu.Lock()
	h.items = items
	h.mu.Unlock()
	return nil
}

// Save persists the entries.
func (h *History) Save(ctx context.Context) error {
	if h.store == nil {
		return nil
	}
	if err := store.SaveJSON(ctx, h.store, store.KeyHistory, h.List()); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Clear removes every entry, in memory and in storage.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.items = nil
	h.mu.Unlock()
	if h.store == nil {
		return nil
	}
	if err := h.store.Delete(ctx, store.KeyHistory); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
