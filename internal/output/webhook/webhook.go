package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/model"
	"github.com/crimson-sun/ideastream/internal/output"
)

const (
	defaultBatchSize     = 50
	defaultFlushInterval = 5 * time.Second
	defaultTimeout       = 10 * time.Second
	maxRetries           = 3
)

// Payload kinds.
const (
	KindProgress = "progress"
	KindReport   = "report"
)

// Payload is the JSON body of every POST.
type Payload struct {
	Kind      string           `json:"kind"`
	Envelopes []model.Envelope `json:"envelopes,omitempty"`
	Report    *model.Report    `json:"report,omitempty"`
}

// Option configures a webhook Output.
type Option func(*Output)

// WithHeaders sets custom HTTP headers sent with every POST.
func WithHeaders(h map[string]string) Option {
	return func(o *Output) { o.headers = h }
}

// WithBatchSize sets the number of progress envelopes accumulated before a
// flush. Default: 50.
func WithBatchSize(n int) Option {
	return func(o *Output) { o.batchSize = n }
}

// WithFlushInterval sets the maximum time between progress flushes. Default: 5s.
func WithFlushInterval(d time.Duration) Option {
	return func(o *Output) { o.flushInterval = d }
}

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(o *Output) { o.client.Timeout = d }
}

// WithVerbosity sets how envelope content is formatted. Default: Standard.
func WithVerbosity(v compactor.Verbosity) Option {
	return func(o *Output) { o.verbosity = v }
}

// WithOnError sets a callback invoked when a timer-triggered flush fails.
// Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(o *Output) { o.errFunc = f }
}

// withBackoff replaces the retry delay schedule.
func withBackoff(f func(attempt int) time.Duration) Option {
	return func(o *Output) { o.backoff = f }
}

// Output POSTs analysis progress and final reports to an HTTP endpoint.
// Progress envelopes accumulate and are flushed as one payload when
// batchSize is reached or flushInterval elapses. Write flushes pending
// progress first, so the report is always the last payload of a session.
// Retries on 5xx with exponential backoff.
type Output struct {
	client        *http.Client
	url           string
	headers       map[string]string
	batchSize     int
	flushInterval time.Duration
	verbosity     compactor.Verbosity
	errFunc       func(error)
	backoff       func(attempt int) time.Duration
	mu            sync.Mutex
	pending       []model.Envelope
	timer         *time.Timer
}

// New creates a webhook output targeting the given URL.
func New(url string, opts ...Option) *Output {
	o := &Output{
		client:        &http.Client{Timeout: defaultTimeout},
		url:           url,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		verbosity:     compactor.Standard,
		errFunc:       func(err error) { slog.Warn("webhook flush error", "error", err) },
		backoff:       func(attempt int) time.Duration { return time.Duration(1<<(attempt-1)) * time.Second },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Progress appends an envelope to the batch. A timer is started on the
// first envelope so the batch flushes even if batchSize is never reached.
func (o *Output) Progress(ctx context.Context, env model.Envelope) error {
	if o.verbosity == compactor.Minimal {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending = append(o.pending, output.FormatEnvelope(env, o.verbosity))

	if len(o.pending) >= o.batchSize {
		return o.flushLocked(ctx)
	}

	if len(o.pending) == 1 {
		o.timer = time.AfterFunc(o.flushInterval, func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if err := o.flushLocked(context.Background()); err != nil {
				o.errFunc(err)
			}
		})
	}
	return nil
}

// Write flushes pending progress, then posts the report.
func (o *Output) Write(ctx context.Context, report model.Report) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.flushLocked(ctx); err != nil {
		return err
	}
	report = output.FormatReport(report, o.verbosity)
	return o.post(ctx, Payload{Kind: KindReport, Report: &report})
}

// Close flushes any remaining progress and stops the timer.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.flushLocked(context.Background())
}

// flushLocked sends the pending batch. Caller must hold o.mu.
func (o *Output) flushLocked(ctx context.Context) error {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	if len(o.pending) == 0 {
		return nil
	}
	batch := o.pending
	o.pending = nil
	return o.post(ctx, Payload{Kind: KindProgress, Envelopes: batch})
}

func (o *Output) post(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("webhook: marshal: %w", err)
	}
	return o.postWithRetry(ctx, body)
}

// postWithRetry sends the body via HTTP POST with retry on 5xx.
func (o *Output) postWithRetry(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(o.backoff(attempt))
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range o.headers {
			req.Header.Set(k, v)
		}

		resp, err := o.client.Do(req)
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}

		lastErr = fmt.Errorf("webhook: HTTP %d", resp.StatusCode)

		// Only retry on 5xx server errors.
		if resp.StatusCode < 500 {
			return lastErr
		}
	}
	return lastErr
}
