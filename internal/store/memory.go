package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// Memory is an in-process Store used by tests and ephemeral runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// memoryEventRepo keeps the LLM request log for backends without SQL.
type memoryEventRepo struct {
	mu     sync.Mutex
	events []LLMEvent
	now    func() time.Time
}

// NewMemoryEventRepo returns an EventRepo that lives for the process.
func NewMemoryEventRepo() EventRepo {
	return &memoryEventRepo{now: time.Now}
}

func (r *memoryEventRepo) AppendLLMRequest(_ context.Context, data LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, LLMEvent{
		ID:                  len(r.events) + 1,
		Timestamp:           r.now(),
		LLMRequestEventData: data,
	})
	return nil
}

func (r *memoryEventRepo) QueryLLMEvents(_ context.Context, opts QueryOpts) ([]LLMEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []LLMEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if opts.Purpose != "" && e.Purpose != opts.Purpose {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *memoryEventRepo) GetLLMEvent(_ context.Context, id int) (*LLMEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 1 || id > len(r.events) {
		return nil, nil
	}
	e := r.events[id-1]
	return &e, nil
}

func (r *memoryEventRepo) LLMUsageByPurpose(_ context.Context) ([]LLMUsage, error) {
	return r.usageBy(func(e LLMEvent) string { return e.Purpose }, false), nil
}

func (r *memoryEventRepo) LLMUsageByModel(_ context.Context) ([]LLMUsage, error) {
	return r.usageBy(func(e LLMEvent) string { return e.Model }, true), nil
}

func (r *memoryEventRepo) usageBy(key func(LLMEvent) string, byModel bool) []LLMUsage {
	r.mu.Lock()
	defer r.mu.Unlock()

	type acc struct {
		LLMUsage
		latency int64
	}
	groups := make(map[string]*acc)
	for _, e := range r.events {
		k := key(e)
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			if byModel {
				a.Model = k
			} else {
				a.Purpose = k
			}
			groups[k] = a
		}
		a.Calls++
		a.InputTokens += e.InputTokens
		a.OutputTokens += e.OutputTokens
		a.latency += e.LatencyMs
	}

	out := make([]LLMUsage, 0, len(groups))
	for _, a := range groups {
		a.AvgLatencyMs = a.latency / int64(a.Calls)
		out = append(out, a.LLMUsage)
	}
	slices.SortFunc(out, func(a, b LLMUsage) int {
		return cmp.Compare(a.Purpose+a.Model, b.Purpose+b.Model)
	})
	return out
}
