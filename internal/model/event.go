package model

// Reserved transport steps. They report connection status, never analysis content.
const (
	StepInit = "init"
	StepHTTP = "http"
)

// Envelope is one decoded stream record: a content payload tagged with the
// analysis step it belongs to. Content holds whatever JSON value the upstream
// sent (string, number, bool, nil, []any or map[string]any).
type Envelope struct {
	Step    string `json:"step" yaml:"step"`
	Content any    `json:"content" yaml:"content"`
}

// IsReserved reports whether step is a transport marker.
func IsReserved(step string) bool {
	return step == StepInit || step == StepHTTP
}
