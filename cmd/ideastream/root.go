package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/ideastream/internal/config"
	"github.com/crimson-sun/ideastream/internal/logging"
)

// rootFlags are shared by every subcommand. Set flags override config.
type rootFlags struct {
	format    string
	verbosity string
	logLevel  string
	webhook   string
	pretty    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "ideastream",
		Short: "Stream and normalize idea analyses",
		Long: "ideastream sends a business idea to a remote analysis service, follows\n" +
			"its live NDJSON stream and prints a typed idea validation, legal\n" +
			"analysis and SWOT breakdown, or the raw stream when none could be found.",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			applyRootFlags(cmd, &flags, &cfg)
			logging.Init(cfg.Output.Format != "text", logging.ParseLevel(cfg.LogLevel))
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&flags.format, "output", "o", "", "Output format: text, json or yaml (default: $IDEASTREAM_OUTPUT or text)")
	f.StringVar(&flags.verbosity, "verbosity", "", "Raw content detail: minimal, standard or full")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	f.StringVar(&flags.webhook, "webhook", "", "Also POST progress and the final report to this URL")
	f.BoolVar(&flags.pretty, "pretty", false, "Indent JSON output")

	cmd.AddCommand(newAnalyzeCmd(&cfg))
	cmd.AddCommand(newNormalizeCmd(&cfg))
	return cmd
}

func applyRootFlags(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Output.Format = flags.format
	}
	if f.Changed("verbosity") {
		cfg.Engine.Verbosity = flags.verbosity
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if f.Changed("webhook") {
		cfg.Output.WebhookURL = flags.webhook
	}
	if f.Changed("pretty") {
		cfg.Output.Pretty = flags.pretty
	}
}

func validate(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}
	return nil
}
