package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/ideastream/internal/model"
	"github.com/crimson-sun/ideastream/internal/output"
)

// Multi fans out progress and reports to multiple output.Output
// implementations, sequentially and in order. If one output fails, the
// remaining outputs still receive the call.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Progress delivers the envelope to every wrapped output.
func (m *Multi) Progress(ctx context.Context, env model.Envelope) error {
	return m.each(func(o output.Output) error { return o.Progress(ctx, env) })
}

// Write delivers the report to every wrapped output. Errors are collected
// but do not prevent delivery to subsequent outputs.
func (m *Multi) Write(ctx context.Context, report model.Report) error {
	return m.each(func(o output.Output) error { return o.Write(ctx, report) })
}

// Close calls Close on every wrapped output, collecting errors.
func (m *Multi) Close() error {
	return m.each(output.Output.Close)
}

func (m *Multi) each(f func(output.Output) error) error {
	var errs []error
	for _, o := range m.outputs {
		if err := f(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
