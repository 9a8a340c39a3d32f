package ideastream

import (
	"context"
	"io"

	"github.com/crimson-sun/ideastream/internal/engine"
	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/engine/normalizer"
	"github.com/crimson-sun/ideastream/internal/model"
)

// Decode reads an analysis stream to EOF and normalizes it. Reads happen
// one at a time on the calling goroutine.
//
// A cancelled ctx returns ctx.Err() and no report. A failed read returns an
// error matching *TransportError via errors.As.
func Decode(ctx context.Context, r io.Reader, opts ...Option) (Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	engOpts := []engine.Option{
		engine.WithVerbosity(compactor.ParseVerbosity(o.verbosity)),
	}
	if o.chunkSize > 0 {
		engOpts = append(engOpts, engine.WithChunkSize(o.chunkSize))
	}
	if o.flushTrailing {
		engOpts = append(engOpts, engine.WithFlushTrailing())
	}
	eng := engine.New(normalizer.New(), engOpts...)

	var obs engine.Observer
	if o.observer != nil {
		obs = func(env model.Envelope) { o.observer(Envelope(env)) }
	}
	report, err := eng.Run(ctx, r, obs)
	if err != nil {
		return Report{}, err
	}
	return reportFromModel(report), nil
}

// Normalize extracts a Result from a single aggregate object with keys
// idea_validation, legal_analysis, swot_analysis and overall_summary.
// ok is false when no domain could be extracted.
func Normalize(aggregate map[string]any) (res *Result, ok bool) {
	r, ok := normalizer.New().NormalizeAggregate(aggregate)
	if !ok {
		return nil, false
	}
	return resultFromModel(r), true
}

// TransportError reports a stream that broke before completion.
type TransportError = model.TransportError
