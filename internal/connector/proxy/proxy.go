package proxy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/crimson-sun/ideastream/internal/connector"
	"github.com/crimson-sun/ideastream/internal/connector/httpclient"
)

func init() {
	connector.Register("proxy", func() connector.Connector {
		return &Connector{}
	})
}

// Connector starts analyses on a remote HTTP service and streams its
// NDJSON response.
type Connector struct{}

// Open POSTs the request to cfg.Endpoint as
// ?prompt=..&actions=..&actions=.. with a multipart form carrying the
// optional "file" part.
func (c *Connector) Open(ctx context.Context, cfg connector.ConnectorConfig, req connector.Request) (io.ReadCloser, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("proxy connector: missing endpoint")
	}

	query := url.Values{"prompt": {req.Prompt}}
	for _, a := range req.Actions {
		query.Add("actions", a)
	}

	var files []httpclient.File
	if req.Attachment != nil {
		files = append(files, httpclient.File{
			Field: "file",
			Name:  req.Attachment.Name,
			Data:  req.Attachment.Data,
		})
	}

	var opts []httpclient.Option
	if cfg.Timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(cfg.Timeout))
	}
	client := httpclient.New(cfg.Endpoint, cfg.APIKey, opts...)

	slog.Debug("opening analysis stream",
		"endpoint", cfg.Endpoint,
		"actions", len(req.Actions),
		"attachment", req.Attachment != nil)

	body, err := client.PostStream(ctx, "", query, files...)
	if err != nil {
		return nil, fmt.Errorf("proxy connector: %w", err)
	}
	return body, nil
}
