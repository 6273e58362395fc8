package tutor

import (
	"context"
	"sync"

	"github.com/abhisek/lumen/internal/content"
)

// Prefetcher generates the next lesson in the background while the
// current one is played. Only one lesson is in flight at a time; a new
// Request supersedes the pending one and its late result is dropped.
type Prefetcher struct {
	svc *Service
	gen Generation

	mu      sync.Mutex
	topic   string
	pending *content.Section
	err     error
	ready   bool
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewPrefetcher returns an idle prefetcher.
func NewPrefetcher(svc *Service) *Prefetcher {
	return &Prefetcher{svc: svc}
}

// Request starts generating a lesson for topic. The generation id is
// taken under mu so the recorded topic always belongs to the latest id.
func (p *Prefetcher) Request(ctx context.Context, topic string, d content.Difficulty) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	id := p.gen.Begin()
	if p.cancel != nil {
		p.cancel()
	}
	p.topic = topic
	p.pending, p.err, p.ready = nil, nil, false
	p.done, p.cancel = done, cancel
	p.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		sec, err := p.svc.GenerateLesson(ctx, topic, d)
		p.mu.Lock()
		defer p.mu.Unlock()
		if !p.gen.Current(id) {
			p.svc.log.Debug("dropping superseded prefetch", "topic", topic)
			return
		}
		p.pending, p.err, p.ready = sec, err, true
	}()
}

// Consume returns the prefetched lesson for topic once it is ready and
// clears the slot. ok is false while generation is still running, when
// nothing was requested, or when the pending lesson is for another topic.
func (p *Prefetcher) Consume(topic string) (sec *content.Section, ok bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready || p.topic != topic {
		return nil, false, nil
	}
	sec, err = p.pending, p.err
	p.pending, p.err, p.ready = nil, nil, false
	p.topic = ""
	return sec, true, err
}

// Await waits for the lesson requested for topic and consumes it. When
// nothing is pending for topic, or the request was superseded, the lesson
// is generated in the foreground instead.
func (p *Prefetcher) Await(ctx context.Context, topic string, d content.Difficulty) (*content.Section, error) {
	p.mu.Lock()
	done := p.done
	pending := done != nil && p.topic == topic
	p.mu.Unlock()

	if pending {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if sec, ok, err := p.Consume(topic); ok {
			return sec, err
		}
	}
	return p.svc.GenerateLesson(ctx, topic, d)
}

// Cancel drops any in-flight or ready lesson.
func (p *Prefetcher) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen.Cancel()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.topic = ""
	p.pending, p.err, p.ready = nil, nil, false
	p.done = nil
}
