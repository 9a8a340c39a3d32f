package output

import (
	"context"

	"github.com/crimson-sun/ideastream/internal/model"
)

// Output defines the interface for analysis result destinations.
type Output interface {
	// Progress receives each visible envelope while the stream is live.
	Progress(ctx context.Context, env model.Envelope) error
	// Write receives the final report of a session.
	Write(ctx context.Context, report model.Report) error
	Close() error
}
