package llm

import (
	"context"
	"time"

	"github.com/abhisek/lumen/internal/metrics"
)

// MetricsProvider is a decorator that records request counts, latency and
// token usage.
type MetricsProvider struct {
	inner   Provider
	metrics *metrics.Metrics
}

// WithMetrics wraps p with Prometheus instrumentation. A nil m returns p
// unchanged.
func WithMetrics(p Provider, m *metrics.Metrics) Provider {
	if m == nil {
		return p
	}
	return &MetricsProvider{inner: p, metrics: m}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := m.inner.Generate(ctx, req)
	m.observe(ctx, start, resp, err)
	return resp, err
}

func (m *MetricsProvider) Stream(ctx context.Context, req Request, onDelta func(string) error) (*Response, error) {
	start := time.Now()
	resp, err := Stream(ctx, m.inner, req, onDelta)
	m.observe(ctx, start, resp, err)
	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}

func (m *MetricsProvider) observe(ctx context.Context, start time.Time, resp *Response, err error) {
	var in, out int
	if resp != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.metrics.ObserveLLM(m.inner.ModelID(), PurposeFrom(ctx), err, time.Since(start), in, out)
}
