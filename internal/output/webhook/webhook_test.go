package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/model"
)

func testEnvelope(step string) model.Envelope {
	return model.Envelope{Step: step, Content: "content of " + step}
}

func noBackoff(int) time.Duration { return time.Millisecond }

// recorder is a webhook endpoint that keeps every payload it receives.
type recorder struct {
	mu       sync.Mutex
	payloads []Payload
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var p Payload
	json.Unmarshal(body, &p)
	rec.mu.Lock()
	rec.payloads = append(rec.payloads, p)
	rec.mu.Unlock()
	w.WriteHeader(200)
}

func (rec *recorder) received() []Payload {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Payload(nil), rec.payloads...)
}

func TestBatchFlushAtBatchSize(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	out := New(srv.URL, WithBatchSize(3), WithFlushInterval(10*time.Second))
	for i := 0; i < 3; i++ {
		if err := out.Progress(context.Background(), testEnvelope("thinking")); err != nil {
			t.Fatalf("Progress error: %v", err)
		}
	}

	got := rec.received()
	if len(got) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(got))
	}
	if got[0].Kind != KindProgress || len(got[0].Envelopes) != 3 {
		t.Errorf("batch = %+v, want 3 progress envelopes", got[0])
	}
}

func TestTimerFlushBeforeBatchSize(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	out := New(srv.URL, WithBatchSize(100), WithFlushInterval(100*time.Millisecond))
	defer out.Close()
	out.Progress(context.Background(), testEnvelope("timer"))

	// Wait for the timer to fire.
	time.Sleep(300 * time.Millisecond)

	got := rec.received()
	if len(got) != 1 {
		t.Fatalf("expected 1 timer-triggered batch, got %d", len(got))
	}
	if len(got[0].Envelopes) != 1 {
		t.Errorf("batch size = %d, want 1", len(got[0].Envelopes))
	}
}

func TestWriteFlushesProgressFirst(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	out := New(srv.URL, WithBatchSize(100), WithFlushInterval(10*time.Second))
	out.Progress(context.Background(), testEnvelope("idea_validation"))
	out.Progress(context.Background(), testEnvelope("legal_analysis"))
	err := out.Write(context.Background(), model.Report{
		SessionID: "s-1",
		Result:    &model.CanonicalResult{OverallSummary: "Go."},
	})
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got := rec.received()
	if len(got) != 2 {
		t.Fatalf("expected progress then report, got %d payloads", len(got))
	}
	if got[0].Kind != KindProgress || len(got[0].Envelopes) != 2 {
		t.Errorf("first payload = %+v", got[0])
	}
	if got[1].Kind != KindReport || got[1].Report == nil || got[1].Report.SessionID != "s-1" {
		t.Errorf("second payload = %+v", got[1])
	}
}

func TestMinimalSkipsProgress(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	out := New(srv.URL, WithBatchSize(1), WithVerbosity(compactor.Minimal))
	out.Progress(context.Background(), testEnvelope("thinking"))
	out.Close()

	if n := len(rec.received()); n != 0 {
		t.Fatalf("expected no payloads, got %d", n)
	}
}

func TestRetryOn5xx(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(500)
			return
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	out := New(srv.URL, withBackoff(noBackoff))
	if err := out.Write(context.Background(), model.Report{SessionID: "retry"}); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestRetryGivesUp(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(502)
	}))
	defer srv.Close()

	out := New(srv.URL, withBackoff(noBackoff))
	if err := out.Write(context.Background(), model.Report{}); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	// 1 initial + 3 retries
	if attempts.Load() != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts.Load())
	}
}

func TestNoRetryOn4xx(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(400)
	}))
	defer srv.Close()

	out := New(srv.URL, WithBatchSize(1))
	err := out.Progress(context.Background(), testEnvelope("client-error"))

	if err == nil {
		t.Error("expected error for 400 response")
	}
	if attempts.Load() != 1 {
		t.Errorf("expected exactly 1 attempt for 4xx, got %d", attempts.Load())
	}
}

func TestRetryHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	out := New(srv.URL, withBackoff(func(int) time.Duration {
		cancel()
		return time.Hour
	}))
	if err := out.Write(ctx, model.Report{}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCustomHeaders(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-Custom-Auth")
		w.WriteHeader(200)
	}))
	defer srv.Close()

	out := New(srv.URL,
		WithBatchSize(1),
		WithHeaders(map[string]string{"X-Custom-Auth": "secret123"}),
	)
	out.Progress(context.Background(), testEnvelope("headers"))

	if gotAuth != "secret123" {
		t.Errorf("custom header = %q, want secret123", gotAuth)
	}
}

func TestTimerFlushErrorCallbackInvoked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
	}))
	defer srv.Close()

	var errCount atomic.Int64
	out := New(srv.URL,
		WithBatchSize(100),
		WithFlushInterval(50*time.Millisecond),
		WithOnError(func(err error) { errCount.Add(1) }),
	)

	out.Progress(context.Background(), testEnvelope("timer-error"))

	// Wait for timer-triggered flush + HTTP round-trip.
	time.Sleep(300 * time.Millisecond)

	if errCount.Load() != 1 {
		t.Errorf("expected error callback called 1 time, got %d", errCount.Load())
	}

	out.Close()
}

func TestCloseFlushesRemaining(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	out := New(srv.URL, WithBatchSize(100), WithFlushInterval(10*time.Second))
	out.Progress(context.Background(), testEnvelope("close-flush"))
	out.Progress(context.Background(), testEnvelope("close-flush"))
	out.Close()

	got := rec.received()
	if len(got) != 1 {
		t.Fatalf("expected 1 batch on Close, got %d", len(got))
	}
	if len(got[0].Envelopes) != 2 {
		t.Errorf("batch size = %d, want 2", len(got[0].Envelopes))
	}
}
