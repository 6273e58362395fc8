package llm

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/abhisek/lumen/internal/metrics"
	"github.com/abhisek/lumen/internal/store"
)

func TestLogging_RecordsEvents(t *testing.T) {
	repo := store.NewMemoryEventRepo()
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, repo, nil)

	ctx := WithPurpose(t.Context(), "lesson")
	if _, err := p.Generate(ctx, Request{System: "sys", Grounding: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(t.Context(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	failed, ok := events[0], events[1]
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("newest event should be the failure: %+v", failed)
	}
	if !ok.Success || ok.InputTokens != 7 || ok.Purpose != "lesson" {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if ok.RequestID == "" || ok.RequestID == failed.RequestID {
		t.Errorf("request ids should be unique: %q %q", ok.RequestID, failed.RequestID)
	}
}

func TestMetrics_ObservesCalls(t *testing.T) {
	m := metrics.New()
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithMetrics(mock, m)

	if _, err := p.Generate(WithPurpose(t.Context(), "feed"), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := testutil.GatherAndCount(m.Registry(), "lumen_llm_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 series, got %d", n)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	mock := NewMockProvider()
	if p := WithRateLimit(mock, RateLimitConfig{}); p != Provider(mock) {
		t.Fatal("zero config should return the provider unchanged")
	}
}

func TestRateLimit_Throttles(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	// 600/min is one token every 100ms, burst 1.
	p := WithRateLimit(mock, RateLimitConfig{RequestsPerMinute: 600, Burst: 1})

	start := time.Now()
	for range 2 {
		if _, err := p.Generate(t.Context(), Request{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("second call was not throttled: %v", elapsed)
	}
}

func TestNewProvider_MockChain(t *testing.T) {
	p, err := NewProvider(t.Context(), Config{Provider: "mock"}, Deps{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}

	_, err = NewProvider(t.Context(), Config{Provider: "nope"}, Deps{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
