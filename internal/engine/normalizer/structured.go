package normalizer

import (
	"strconv"
	"strings"

	"github.com/crimson-sun/ideastream/internal/engine/compactor"
)

// coerceList turns a structured field into a list of non-empty strings.
// A string that looks like a bracketed list is split like the text tier
// would split it; any other string becomes a single item.
func coerceList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case nil:
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(compactor.Flatten(item)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		s := strings.TrimSpace(t)
		if strings.HasPrefix(s, "[") {
			if items, ok := parseList(s[1:]); ok {
				return items
			}
		}
		if s != "" {
			out = append(out, s)
		}
	default:
		if s := strings.TrimSpace(compactor.Flatten(t)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// coerceScore accepts a JSON number or a numeric string.
func coerceScore(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// coerceText deep-flattens composite values into a string.
func coerceText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return compactor.Flatten(v)
}
