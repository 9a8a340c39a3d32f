package main

import (
	"io"

	"github.com/crimson-sun/ideastream/internal/config"
	"github.com/crimson-sun/ideastream/internal/connector"
	"github.com/crimson-sun/ideastream/internal/engine"
	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/engine/normalizer"
	"github.com/crimson-sun/ideastream/internal/output"
	"github.com/crimson-sun/ideastream/internal/output/multi"
	"github.com/crimson-sun/ideastream/internal/output/stdout"
	"github.com/crimson-sun/ideastream/internal/output/webhook"
	"github.com/crimson-sun/ideastream/internal/pipeline"

	// Register connector implementations.
	_ "github.com/crimson-sun/ideastream/internal/connector/proxy"
	_ "github.com/crimson-sun/ideastream/internal/connector/replay"
)

// buildPipeline wires the configured connector, engine and outputs.
// Reports go to w; a webhook output is added when one is configured.
func buildPipeline(cfg config.Config, w io.Writer) (*pipeline.Pipeline, connector.ConnectorConfig, error) {
	ctor, err := connector.Get(cfg.Connector.Provider)
	if err != nil {
		return nil, connector.ConnectorConfig{}, err
	}

	verbosity := compactor.ParseVerbosity(cfg.Engine.Verbosity)
	opts := []engine.Option{
		engine.WithChunkSize(cfg.Engine.ChunkSize),
		engine.WithVerbosity(verbosity),
	}
	if cfg.Engine.FlushTrailing {
		opts = append(opts, engine.WithFlushTrailing())
	}
	eng := engine.New(normalizer.New(), opts...)

	format, err := stdout.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, connector.ConnectorConfig{}, err
	}
	stdoutOpts := []stdout.Option{stdout.WithWriter(w)}
	if cfg.Output.Pretty {
		stdoutOpts = append(stdoutOpts, stdout.WithPretty())
	}
	var out output.Output = stdout.New(format, verbosity, stdoutOpts...)
	if cfg.Output.WebhookURL != "" {
		out = multi.New(out, webhook.New(cfg.Output.WebhookURL, webhook.WithVerbosity(verbosity)))
	}

	connCfg := connector.ConnectorConfig{
		Provider: cfg.Connector.Provider,
		APIKey:   cfg.Connector.APIKey,
		Endpoint: cfg.Connector.Endpoint,
		Timeout:  cfg.Connector.Timeout,
		Extra:    cfg.Connector.Extra,
	}
	return pipeline.New(ctor(), eng, out), connCfg, nil
}
