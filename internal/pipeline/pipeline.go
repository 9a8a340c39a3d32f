package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/ideastream/internal/connector"
	"github.com/crimson-sun/ideastream/internal/engine"
	"github.com/crimson-sun/ideastream/internal/model"
	"github.com/crimson-sun/ideastream/internal/output"
)

// Pipeline connects a connector, engine, and output into one analysis session.
type Pipeline struct {
	connector connector.Connector
	engine    *engine.Engine
	output    output.Output
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, eng *engine.Engine, out output.Output) *Pipeline {
	return &Pipeline{
		connector: conn,
		engine:    eng,
		output:    out,
	}
}

// Run opens a stream for req, forwards every visible envelope to the
// output as progress and writes the final report. Transport and upstream
// failures are written as a report carrying the error, then returned.
// A session whose ctx is done writes nothing; a timeout inside the
// connector is a transport failure and is reported.
func (p *Pipeline) Run(ctx context.Context, cfg connector.ConnectorConfig, req connector.Request) error {
	body, err := p.connector.Open(ctx, cfg, req)
	if err != nil {
		return p.fail(ctx, fmt.Errorf("pipeline open: %w", err))
	}
	defer body.Close()

	var progressErrs int
	report, err := p.engine.Run(ctx, body, func(env model.Envelope) {
		if err := p.output.Progress(ctx, env); err != nil {
			progressErrs++
			slog.Warn("progress output failed", "step", env.Step, "error", err)
		}
	})
	if err != nil {
		return p.fail(ctx, fmt.Errorf("pipeline stream: %w", err))
	}

	slog.Info("analysis complete",
		"session", report.SessionID,
		"structured", report.Result != nil,
		"raw_envelopes", len(report.Raw),
		"progress_errors", progressErrs)

	if err := p.output.Write(ctx, report); err != nil {
		return fmt.Errorf("pipeline output: %w", err)
	}
	return nil
}

// Aggregate normalizes a single aggregate object and writes its report.
func (p *Pipeline) Aggregate(ctx context.Context, agg map[string]any) error {
	if err := p.output.Write(ctx, p.engine.NormalizeAggregate(agg)); err != nil {
		return fmt.Errorf("pipeline output: %w", err)
	}
	return nil
}

func (p *Pipeline) fail(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}
	if werr := p.output.Write(ctx, model.Report{Error: err.Error()}); werr != nil {
		return errors.Join(err, fmt.Errorf("pipeline output: %w", werr))
	}
	return err
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
