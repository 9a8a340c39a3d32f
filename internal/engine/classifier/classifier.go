package classifier

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape is the form an upstream payload arrived in.
type Shape int

const (
	Unknown        Shape = iota // nothing extractable
	Structured                  // object carrying expected fields
	SemiStructured              // text resembling a serialized record
)

func (s Shape) String() string {
	switch s {
	case Structured:
		return "structured"
	case SemiStructured:
		return "semi-structured"
	default:
		return "unknown"
	}
}

// Result holds the outcome of classifying one domain value.
type Result struct {
	Shape  Shape
	Object map[string]any // set when Shape is Structured
	Text   string         // set when Shape is SemiStructured
}

// Classifier decides which extraction tier applies to a value, given the
// field names the domain expects.
type Classifier struct {
	Fields []string
}

// New creates a Classifier for a domain with the given field names.
func New(fields ...string) *Classifier {
	return &Classifier{Fields: fields}
}

// Classify inspects v. An object (or a list holding one, or a string holding
// a JSON object) with at least one expected field is Structured. Strings and
// lists of strings are SemiStructured, their fragments joined with one space.
func (c *Classifier) Classify(v any) Result {
	if obj, ok := c.findObject(v); ok {
		return Result{Shape: Structured, Object: obj}
	}
	if text, ok := textOf(v); ok && strings.TrimSpace(text) != "" {
		return Result{Shape: SemiStructured, Text: text}
	}
	return Result{Shape: Unknown}
}

// HasField reports whether obj carries any of the expected fields.
func (c *Classifier) HasField(obj map[string]any) bool {
	for _, f := range c.Fields {
		if _, ok := obj[f]; ok {
			return true
		}
	}
	return false
}

func (c *Classifier) findObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		if c.HasField(t) {
			return t, true
		}
	case []any:
		for _, item := range t {
			if obj, ok := c.findObject(item); ok {
				return obj, true
			}
		}
	case string:
		if obj, ok := DecodeObject(t); ok && c.HasField(obj) {
			return obj, true
		}
	}
	return nil, false
}

// DecodeObject parses s as a JSON object.
func DecodeObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !gjson.Valid(s) {
		return nil, false
	}
	obj, ok := gjson.Parse(s).Value().(map[string]any)
	return obj, ok
}

// textOf joins the string fragments of v with a single space.
func textOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := textOf(item); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, " "), true
	}
	return "", false
}
