package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLLM(t *testing.T) {
	m := New()
	m.ObserveLLM("gemini-2.5-flash", "lesson", nil, 2*time.Second, 100, 50)
	m.ObserveLLM("gemini-2.5-flash", "lesson", errors.New("boom"), time.Second, 0, 0)

	if got := testutil.ToFloat64(m.llmRequests.WithLabelValues("gemini-2.5-flash", "lesson", "ok")); got != 1 {
		t.Errorf("ok requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.llmRequests.WithLabelValues("gemini-2.5-flash", "lesson", "error")); got != 1 {
		t.Errorf("error requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.llmTokens.WithLabelValues("gemini-2.5-flash", "input")); got != 100 {
		t.Errorf("input tokens = %v, want 100", got)
	}
}

func TestLessonFinished(t *testing.T) {
	m := New()
	m.LessonFinished(true)
	m.LessonFinished(true)
	m.LessonFinished(false)

	if got := testutil.ToFloat64(m.lessons.WithLabelValues("passed")); got != 2 {
		t.Errorf("passed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.lessons.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveLLM("p", "x", nil, time.Second, 1, 1)
	m.LessonFinished(true)
	m.ObserveHTTP("GET", "/healthz", 200, time.Millisecond)
}

func TestHandlerExposition(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/healthz", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `lumen_http_requests_total{endpoint="/healthz",method="GET",status="200"} 1`) {
		t.Errorf("exposition missing http counter:\n%s", body)
	}
}
