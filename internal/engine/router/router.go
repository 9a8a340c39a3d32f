package router

import (
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/crimson-sun/ideastream/internal/model"
)

// Router parses decoded lines into envelopes and accumulates their content
// per step. Lines that are not a JSON object with a string "step" are
// dropped silently; the upstream interleaves diagnostic text with records.
// A Router belongs to one session and is not safe for concurrent use.
type Router struct {
	log      []model.Envelope
	acc      *model.Accumulated
	reserved int
	dropped  int
}

// New creates an empty Router.
func New() *Router {
	return &Router{acc: model.NewAccumulated()}
}

// Route parses one line. It returns the envelope and true when the line
// carried analysis content that was appended to the log. Reserved transport
// steps are consumed and return false.
func (r *Router) Route(line string) (model.Envelope, bool) {
	env, ok := Parse(line)
	if !ok {
		r.dropped++
		return model.Envelope{}, false
	}
	if model.IsReserved(env.Step) {
		r.reserved++
		slog.Debug("transport status", "step", env.Step, "content", env.Content)
		return model.Envelope{}, false
	}
	r.log = append(r.log, env)
	r.acc.Append(env.Step, env.Content)
	return env, true
}

// Log returns the visible envelopes in arrival order.
func (r *Router) Log() []model.Envelope {
	return append([]model.Envelope(nil), r.log...)
}

// Accumulated returns the per-step content collected so far.
func (r *Router) Accumulated() *model.Accumulated {
	return r.acc
}

// Reserved returns how many transport status envelopes were consumed.
func (r *Router) Reserved() int {
	return r.reserved
}

// Dropped returns how many lines failed to parse as envelopes.
func (r *Router) Dropped() int {
	return r.dropped
}

// Parse decodes a single line as an envelope without any routing.
func Parse(line string) (model.Envelope, bool) {
	if strings.TrimSpace(line) == "" || !gjson.Valid(line) {
		return model.Envelope{}, false
	}
	res := gjson.Parse(line)
	if !res.IsObject() {
		return model.Envelope{}, false
	}
	step := res.Get("step")
	if step.Type != gjson.String || step.Str == "" {
		return model.Envelope{}, false
	}
	return model.Envelope{Step: step.Str, Content: res.Get("content").Value()}, true
}
