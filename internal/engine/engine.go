package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/engine/decoder"
	"github.com/crimson-sun/ideastream/internal/engine/normalizer"
	"github.com/crimson-sun/ideastream/internal/engine/router"
	"github.com/crimson-sun/ideastream/internal/model"
)

const defaultChunkSize = 32 * 1024

// Observer receives each visible envelope as soon as it is routed.
type Observer func(model.Envelope)

// Option configures an Engine.
type Option func(*Engine)

// WithChunkSize sets the size of each read from the stream. Default: 32KB.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithFlushTrailing emits an unterminated final line instead of dropping it.
func WithFlushTrailing() Option {
	return func(e *Engine) { e.flushTrailing = true }
}

// WithVerbosity controls whether the live log is kept in reports.
// Minimal drops it. Default: Standard.
func WithVerbosity(v compactor.Verbosity) Option {
	return func(e *Engine) { e.verbosity = v }
}

// Engine orchestrates the decode → route → normalize pipeline for one
// stream at a time. An Engine holds only configuration; every Run owns a
// fresh decoder and router.
type Engine struct {
	normalizer    *normalizer.Normalizer
	chunkSize     int
	flushTrailing bool
	verbosity     compactor.Verbosity
}

// New creates an Engine.
func New(n *normalizer.Normalizer, opts ...Option) *Engine {
	e := &Engine{
		normalizer: n,
		chunkSize:  defaultChunkSize,
		verbosity:  compactor.Standard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session is the state of one analysis stream.
type Session struct {
	ID      string
	decoder *decoder.Decoder
	router  *router.Router
}

// NewSession creates session state with a fresh id.
func (e *Engine) NewSession() *Session {
	var opts []decoder.Option
	if e.flushTrailing {
		opts = append(opts, decoder.WithFlushTrailing())
	}
	return &Session{
		ID:      uuid.NewString(),
		decoder: decoder.New(opts...),
		router:  router.New(),
	}
}

// Feed decodes and routes one chunk, calling obs for every visible envelope.
func (s *Session) Feed(chunk []byte, eof bool, obs Observer) {
	for _, line := range s.decoder.Decode(chunk, eof) {
		env, ok := s.router.Route(line)
		if ok && obs != nil {
			obs(env)
		}
	}
}

// Run consumes body until EOF with one read in flight at a time and returns
// the session report. A cancelled context returns ctx.Err() and no report;
// a failed read returns a *model.TransportError.
func (e *Engine) Run(ctx context.Context, body io.Reader, obs Observer) (model.Report, error) {
	if body == nil {
		return model.Report{}, &model.TransportError{Op: "open", Err: model.ErrNoBody}
	}
	s := e.NewSession()
	logger := slog.With("session", s.ID)
	buf := make([]byte, e.chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			logger.Debug("session abandoned", "error", err)
			return model.Report{}, err
		}
		n, err := body.Read(buf)
		if n > 0 {
			s.Feed(buf[:n], false, obs)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return model.Report{}, ctxErr
			}
			return model.Report{}, &model.TransportError{Op: "read", Err: err}
		}
	}
	s.Feed(nil, true, obs)

	logger.Debug("stream complete",
		"envelopes", len(s.router.Log()),
		"reserved", s.router.Reserved(),
		"dropped", s.router.Dropped())
	return e.Finish(s), nil
}

// Finish normalizes what the session accumulated into a report.
func (e *Engine) Finish(s *Session) model.Report {
	report := model.Report{SessionID: s.ID}
	log := s.router.Log()
	if e.verbosity != compactor.Minimal {
		report.Log = log
	}
	if res, ok := e.normalizer.Normalize(s.router.Accumulated()); ok {
		report.Result = res
	} else {
		report.Raw = log
	}
	return report
}

// NormalizeAggregate normalizes a single aggregate object outside a stream.
// Without any domain the aggregate itself becomes the raw fallback.
func (e *Engine) NormalizeAggregate(agg map[string]any) model.Report {
	report := model.Report{SessionID: uuid.NewString()}
	if res, ok := e.normalizer.NormalizeAggregate(agg); ok {
		report.Result = res
	} else {
		report.Raw = []model.Envelope{{Step: "aggregate", Content: agg}}
	}
	return report
}
