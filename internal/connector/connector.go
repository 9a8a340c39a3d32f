package connector

import (
	"context"
	"io"
	"time"
)

// Connector defines the interface all analysis stream sources must implement.
type Connector interface {
	// Open starts an analysis and returns its NDJSON byte stream.
	// The caller must close the returned body.
	Open(ctx context.Context, cfg ConnectorConfig, req Request) (io.ReadCloser, error)
}

// ConnectorConfig holds provider-specific connection settings.
type ConnectorConfig struct {
	Provider string
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	Extra    map[string]string

	// Stdin is read by providers that accept "-" as an endpoint.
	// Nil means os.Stdin.
	Stdin io.Reader
}

// Request describes one analysis to run.
type Request struct {
	Prompt     string
	Actions    []string
	Attachment *Attachment
}

// Attachment is an optional document sent alongside the prompt.
type Attachment struct {
	Name string
	Data []byte
}
