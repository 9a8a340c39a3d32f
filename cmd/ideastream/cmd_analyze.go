package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/ideastream/internal/config"
	"github.com/crimson-sun/ideastream/internal/connector"
)

const autoAction = "auto"

var analyzeFlags struct {
	trends      string
	competitors string
	file        string
	endpoint    string
	timeout     time.Duration
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <idea description>",
		Short: "Analyze a business idea and print the normalized result",
		Long: `Send an idea description to the analysis service and follow its stream.

Usage:
  ideastream analyze "a mobile coffee cart for office parks"
  ideastream analyze --trends "remote work" --competitors "Starbucks" "..."
  ideastream analyze --file pitch.pdf "..."

The service endpoint is read from IDEASTREAM_ENDPOINT or --endpoint.
Live progress is printed as it arrives in the text format.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, *cfg, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&analyzeFlags.trends, "trends", autoAction, "Market trends to consider, or auto")
	f.StringVar(&analyzeFlags.competitors, "competitors", autoAction, "Known competitors, or auto")
	f.StringVarP(&analyzeFlags.file, "file", "f", "", "PDF document to attach")
	f.StringVar(&analyzeFlags.endpoint, "endpoint", "", "Analysis service URL (default: $IDEASTREAM_ENDPOINT)")
	f.DurationVar(&analyzeFlags.timeout, "timeout", 0, "Bound on the whole analysis (default: $IDEASTREAM_TIMEOUT or 10m)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg config.Config, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("an idea description is required")
	}

	if cmd.Flags().Changed("endpoint") {
		cfg.Connector.Endpoint = analyzeFlags.endpoint
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Connector.Timeout = analyzeFlags.timeout
	}
	if err := validate(cfg); err != nil {
		return err
	}

	req := connector.Request{
		Prompt:  prompt,
		Actions: []string{actionValue(analyzeFlags.trends), actionValue(analyzeFlags.competitors)},
	}
	if analyzeFlags.file != "" {
		att, err := readAttachment(analyzeFlags.file)
		if err != nil {
			return err
		}
		req.Attachment = att
	}

	p, connCfg, err := buildPipeline(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer p.Close()
	return p.Run(cmd.Context(), connCfg, req)
}

// actionValue maps a blank action to auto.
func actionValue(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return autoAction
	}
	return s
}

// readAttachment loads a PDF to send with the prompt.
func readAttachment(path string) (*connector.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	if ct := http.DetectContentType(data); ct != "application/pdf" {
		return nil, fmt.Errorf("attachment %s is %s, want a PDF", path, ct)
	}
	return &connector.Attachment{Name: filepath.Base(path), Data: data}, nil
}
