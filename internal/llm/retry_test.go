package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 4,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_Generate(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"title":"Tides"}`)}
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("502 bad gateway")}}
	garbled := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`The title is Tides`), Err: errors.New("no JSON")}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   error
		wantCalls int
	}{
		{"first attempt", []MockResponse{ok}, nil, 1},
		{"outage then success", []MockResponse{down, ok}, nil, 2},
		{"invalid output retried", []MockResponse{garbled, garbled, ok}, nil, 3},
		{"rate limit honours retry-after", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, ok,
		}, nil, 2},
		{"attempts exhausted", []MockResponse{down, down, down, down, ok}, &ErrProviderUnavailable{}, 4},
		{"token limit is permanent", []MockResponse{
			{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"title":`)}}, ok,
		}, &ErrMaxTokensExceeded{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig(), nil).Generate(t.Context(), Request{})

			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				if string(resp.Content) != `{"title":"Tides"}` {
					t.Errorf("content = %s", resp.Content)
				}
			case *ErrProviderUnavailable:
				if !errors.As(err, &want) {
					t.Errorf("error = %v, want %T", err, want)
				}
			case *ErrMaxTokensExceeded:
				if !errors.As(err, &want) {
					t.Errorf("error = %v, want %T", err, want)
				}
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_CancelledContextStops(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: context.Canceled},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := WithRetry(mock, retryConfig(), nil).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	mock := NewMockProvider()
	p := WithRetry(mock, retryConfig(), nil)
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestRetry_StreamRetriedBeforeFirstDelta(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Chunks: []string{"Hello, ", "world"}},
	)
	p := WithRetry(mock, retryConfig(), nil)

	var got []string
	resp, err := Stream(t.Context(), p, Request{}, func(s string) error {
		got = append(got, s)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Hello, world" {
		t.Fatalf("content = %q", resp.Text())
	}
	if len(got) != 2 || mock.CallCount() != 2 {
		t.Fatalf("deltas = %v, calls = %d", got, mock.CallCount())
	}
}

func TestRetry_StreamNotRetriedAfterDelta(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Chunks: []string{"partial", "rest"}},
		MockResponse{Chunks: []string{"never"}},
	)
	p := WithRetry(mock, retryConfig(), nil)

	sinkErr := errors.New("display closed")
	calls := 0
	_, err := Stream(t.Context(), p, Request{}, func(s string) error {
		calls++
		if calls == 2 {
			return sinkErr
		}
		return nil
	})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("err = %v, want sink error", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}
