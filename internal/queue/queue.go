// Package queue is the learner's list of topics saved for later.
package queue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/store"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

var (
	ErrEmptyTopic = errors.New("queue: topic is empty")
	ErrDuplicate  = errors.New("queue: topic already pending")
	ErrNotFound   = errors.New("queue: no such entry")
)

// Entry is one queued topic. AddedAt is in Unix milliseconds.
type Entry struct {
	ID      string `json:"id"`
	Topic   string `json:"topic"`
	AddedAt int64  `json:"addedAt"`
	Status  Status `json:"status"`
}

type document struct {
	Queue []Entry `json:"queue"`
}

// Queue reads and writes the stored queue. Every operation loads the
// latest copy, so several processes sharing a store see each other's
// changes.
type Queue struct {
	mu    sync.Mutex
	store store.Store
	log   *logger.Logger
	now   func() time.Time
}

func New(s store.Store, log *logger.Logger) *Queue {
	if log == nil {
		log = logger.Nop()
	}
	return &Queue{store: s, log: log, now: time.Now}
}

func (q *Queue) load(ctx context.Context) ([]Entry, error) {
	doc, err := store.LoadJSON[document](ctx, q.store, store.KeyQueue)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, nil
	case errors.Is(err, store.ErrCorrupt):
		q.log.Warn("discarding corrupt queue", "error", err.Error())
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load queue: %w", err)
	}
	return doc.Queue, nil
}

func (q *Queue) save(ctx context.Context, entries []Entry) error {
	if err := store.SaveJSON(ctx, q.store, store.KeyQueue, document{Queue: entries}); err != nil {
		return fmt.Errorf("save queue: %w", err)
	}
	return nil
}

// List returns every entry in insertion order.
func (q *Queue) List(ctx context.Context) ([]Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// Pending returns the entries not yet learned, oldest first.
func (q *Queue) Pending(ctx context.Context) ([]Entry, error) {
	entries, err := q.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(entries, func(e Entry) bool { return e.Status != StatusPending }), nil
}

// Add appends topic. A topic already pending, compared
// case-insensitively, is rejected with ErrDuplicate.
func (q *Queue) Add(ctx context.Context, topic string) (Entry, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Entry{}, ErrEmptyTopic
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	entries, err := q.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Status == StatusPending && strings.EqualFold(e.Topic, topic) {
			return e, ErrDuplicate
		}
	}
	e := Entry{
		ID:      uuid.NewString(),
		Topic:   topic,
		AddedAt: q.now().UnixMilli(),
		Status:  StatusPending,
	}
	if err := q.save(ctx, append(entries, e)); err != nil {
		return Entry{}, err
	}
	q.log.Info("topic queued", "topic", topic, "id", e.ID)
	return e, nil
}

// Next returns the oldest pending entry.
func (q *Queue) Next(ctx context.Context) (Entry, bool, error) {
	pending, err := q.Pending(ctx)
	if err != nil || len(pending) == 0 {
		return Entry{}, false, err
	}
	return pending[0], true, nil
}

// MarkDone flags the entry as learned.
func (q *Queue) MarkDone(ctx context.Context, id string) error {
	return q.update(ctx, id, func(entries []Entry, i int) []Entry {
		entries[i].Status = StatusDone
		return entries
	})
}

// Remove deletes the entry.
func (q *Queue) Remove(ctx context.Context, id string) error {
	return q.update(ctx, id, func(entries []Entry, i int) []Entry {
		return slices.Delete(entries, i, i+1)
	})
}

func (q *Queue) update(ctx context.Context, id string, fn func([]Entry, int) []Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	entries, err := q.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return q.save(ctx, fn(entries, i))
}
