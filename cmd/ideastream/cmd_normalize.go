package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/ideastream/internal/config"
	"github.com/crimson-sun/ideastream/internal/connector"
)

var normalizeFlags struct {
	aggregate     bool
	chunkSize     string
	flushTrailing bool
}

func newNormalizeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize a captured analysis stream or result object",
		Long: `Replay a captured NDJSON analysis stream through the decoder and
normalizer, reading stdin when no file (or "-") is given.

With --aggregate the input is a single JSON object holding
idea_validation, legal_analysis, swot_analysis and overall_summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, *cfg, args)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&normalizeFlags.aggregate, "aggregate", false, "Input is one JSON aggregate object, not a stream")
	f.StringVar(&normalizeFlags.chunkSize, "replay-chunk-size", "", "Bytes per replayed read (default 4096)")
	f.BoolVar(&normalizeFlags.flushTrailing, "flush-trailing", false, "Keep an unterminated final line instead of dropping it")
	return cmd
}

func runNormalize(cmd *cobra.Command, cfg config.Config, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	cfg.Connector.Provider = "replay"
	cfg.Connector.Endpoint = path
	if normalizeFlags.chunkSize != "" {
		extra := map[string]string{}
		for k, v := range cfg.Connector.Extra {
			extra[k] = v
		}
		extra["chunk_size"] = normalizeFlags.chunkSize
		cfg.Connector.Extra = extra
	}
	if cmd.Flags().Changed("flush-trailing") {
		cfg.Engine.FlushTrailing = normalizeFlags.flushTrailing
	}
	if err := validate(cfg); err != nil {
		return err
	}

	p, connCfg, err := buildPipeline(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer p.Close()

	if !normalizeFlags.aggregate {
		connCfg.Stdin = cmd.InOrStdin()
		return p.Run(cmd.Context(), connCfg, connector.Request{})
	}

	agg, err := readAggregate(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	return p.Aggregate(cmd.Context(), agg)
}

func readAggregate(stdin io.Reader, path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read aggregate: %w", err)
	}
	var agg map[string]any
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("aggregate must be a JSON object: %w", err)
	}
	return agg, nil
}
