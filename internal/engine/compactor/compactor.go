package compactor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Verbosity controls how much raw content is retained for display.
type Verbosity int

const (
	Minimal  Verbosity = iota // short previews, no live log in reports
	Standard                  // moderate previews
	Full                      // retain everything
)

// ParseVerbosity maps "minimal", "standard" or "full" to a Verbosity.
// Unknown strings yield Standard.
func ParseVerbosity(s string) Verbosity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// Compactor renders envelope content as display text.
type Compactor struct {
	Verbosity Verbosity
}

// New creates a Compactor with the given verbosity level.
func New(v Verbosity) *Compactor {
	return &Compactor{Verbosity: v}
}

// Compact renders content the way the raw stream view shows it: strings
// verbatim, anything else as JSON, truncated according to verbosity.
func (c *Compactor) Compact(content any) string {
	var s string
	switch t := content.(type) {
	case string:
		s = t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			s = fmt.Sprint(t)
		} else {
			s = string(b)
		}
	}
	switch c.Verbosity {
	case Minimal:
		return truncate(s, 200)
	case Standard:
		return truncate(s, 2000)
	default:
		return s
	}
}

func truncate(s string, maxRunes int) string {
	if len(s) <= maxRunes {
		return s
	}
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "..."
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Sentences splits text into sentences for display. Text without sentence
// punctuation is returned as a single element.
func Sentences(text string) []string {
	matches := sentenceRe.FindAllString(text, -1)
	if len(matches) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{strings.TrimSpace(text)}
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
