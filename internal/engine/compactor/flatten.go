package compactor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Flatten deep-flattens a decoded JSON value into plain text. Lists and
// object values are joined with single spaces; object keys are visited in
// sorted order so the result is stable.
func Flatten(v any) string {
	var parts []string
	flatten(v, &parts)
	return strings.Join(parts, " ")
}

func flatten(v any, parts *[]string) {
	switch t := v.(type) {
	case nil:
	case string:
		if t != "" {
			*parts = append(*parts, t)
		}
	case float64:
		*parts = append(*parts, strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*parts = append(*parts, strconv.FormatBool(t))
	case []any:
		for _, item := range t {
			flatten(item, parts)
		}
	case []string:
		for _, item := range t {
			flatten(item, parts)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(t[k], parts)
		}
	default:
		*parts = append(*parts, fmt.Sprint(t))
	}
}
