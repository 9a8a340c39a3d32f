package replay

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/crimson-sun/ideastream/internal/connector"
)

const defaultChunkSize = 4096

func init() {
	connector.Register("replay", func() connector.Connector {
		return &Connector{}
	})
}

// Connector re-streams a captured NDJSON file. The request is ignored;
// cfg.Endpoint names the file ("-" for cfg.Stdin, or os.Stdin when unset).
//
// Extra keys:
//
//	chunk_size  bytes per read (default 4096)
//	delay       pause between reads, as a Go duration (default none)
type Connector struct{}

// Open returns the capture as a stream paced by the chunk_size and delay
// settings. The returned reader honours ctx while waiting between reads.
func (c *Connector) Open(ctx context.Context, cfg connector.ConnectorConfig, _ connector.Request) (io.ReadCloser, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("replay connector: missing capture path")
	}

	chunk := defaultChunkSize
	if s := cfg.Extra["chunk_size"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("replay connector: invalid chunk_size %q", s)
		}
		chunk = n
	}
	var delay time.Duration
	if s := cfg.Extra["delay"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("replay connector: invalid delay %q: %w", s, err)
		}
		delay = d
	}

	var src io.ReadCloser
	if cfg.Endpoint == "-" {
		stdin := cfg.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		src = io.NopCloser(stdin)
	} else {
		f, err := os.Open(cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("replay connector: %w", err)
		}
		src = f
	}
	return &reader{ctx: ctx, src: src, chunk: chunk, delay: delay}, nil
}

// reader hands out at most chunk bytes per Read, optionally paced.
type reader struct {
	ctx   context.Context
	src   io.ReadCloser
	chunk int
	delay time.Duration
	reads int
}

func (r *reader) Read(p []byte) (int, error) {
	if r.delay > 0 && r.reads > 0 {
		t := time.NewTimer(r.delay)
		select {
		case <-r.ctx.Done():
			t.Stop()
			return 0, r.ctx.Err()
		case <-t.C:
		}
	}
	r.reads++
	if len(p) > r.chunk {
		p = p[:r.chunk]
	}
	return r.src.Read(p)
}

func (r *reader) Close() error {
	return r.src.Close()
}
