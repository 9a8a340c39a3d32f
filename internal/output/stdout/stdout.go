package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/model"
	"github.com/crimson-sun/ideastream/internal/output"
)

// Format selects how reports are rendered.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Option configures a stdout Output.
type Option func(*Output)

// WithWriter redirects output away from os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *Output) { o.w = w }
}

// WithPretty indents JSON reports.
func WithPretty() Option {
	return func(o *Output) { o.pretty = true }
}

// Output writes reports to stdout. The text format also prints the live
// log as it arrives; json and yaml print only the final report.
type Output struct {
	w         io.Writer
	format    Format
	verbosity compactor.Verbosity
	pretty    bool
}

// New creates a stdout Output.
func New(format Format, verbosity compactor.Verbosity, opts ...Option) *Output {
	o := &Output{w: os.Stdout, format: format, verbosity: verbosity}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) Progress(_ context.Context, env model.Envelope) error {
	if o.format != Text || o.verbosity == compactor.Minimal {
		return nil
	}
	env = output.FormatEnvelope(env, o.verbosity)
	if _, err := fmt.Fprintf(o.w, "[%s] %s\n", env.Step, render(env.Content)); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	report = output.FormatReport(report, o.verbosity)

	var err error
	switch o.format {
	case JSON:
		enc := json.NewEncoder(o.w)
		if o.pretty {
			enc.SetIndent("", "  ")
		}
		err = enc.Encode(report)
	case YAML:
		enc := yaml.NewEncoder(o.w)
		enc.SetIndent(2)
		if err = enc.Encode(report); err == nil {
			err = enc.Close()
		}
	default:
		_, err = io.WriteString(o.w, renderText(report))
	}
	if err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
