package output

import (
	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/model"
)

// FormatEnvelope returns a copy of env prepared for display. Below Full the
// content is rendered to text and truncated; at Full it is left untouched.
func FormatEnvelope(env model.Envelope, verbosity compactor.Verbosity) model.Envelope {
	if verbosity == compactor.Full {
		return env
	}
	env.Content = compactor.New(verbosity).Compact(env.Content)
	return env
}

// FormatReport returns a copy of the report with raw and log content
// formatted per FormatEnvelope. At Minimal the live log is dropped.
// The canonical result is never altered.
func FormatReport(r model.Report, verbosity compactor.Verbosity) model.Report {
	r.Raw = formatAll(r.Raw, verbosity)
	if verbosity == compactor.Minimal {
		r.Log = nil
	} else {
		r.Log = formatAll(r.Log, verbosity)
	}
	return r
}

func formatAll(envs []model.Envelope, verbosity compactor.Verbosity) []model.Envelope {
	if envs == nil {
		return nil
	}
	out := make([]model.Envelope, len(envs))
	for i, env := range envs {
		out[i] = FormatEnvelope(env, verbosity)
	}
	return out
}
