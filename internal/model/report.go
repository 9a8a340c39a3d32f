package model

// Report is what a session hands to the presentation layer. Result and Raw
// are mutually exclusive: Raw is set only when no domain could be extracted.
type Report struct {
	SessionID string           `json:"session_id" yaml:"session_id"`
	Result    *CanonicalResult `json:"result,omitempty" yaml:"result,omitempty"`
	Raw       []Envelope       `json:"raw,omitempty" yaml:"raw,omitempty"`
	Log       []Envelope       `json:"log,omitempty" yaml:"log,omitempty"`
	Error     string           `json:"error,omitempty" yaml:"error,omitempty"`
}
