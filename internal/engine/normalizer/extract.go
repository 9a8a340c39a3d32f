package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Keys are matched on a word boundary: "risks=" never matches inside
// "legal_risks=" and "summary=" never inside "overall_summary=".
var (
	listPatterns  = newPatternCache(`\b%s=\s*\[`)
	scorePatterns = newPatternCache(`\b%s=\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)`)
	textPatterns  = newPatternCache(`\b%s=`)
)

// patternCache compiles one regexp per key on first use. It is safe for
// concurrent use.
type patternCache struct {
	format string
	mu     sync.RWMutex
	byKey  map[string]*regexp.Regexp
}

func newPatternCache(format string) *patternCache {
	return &patternCache{format: format, byKey: make(map[string]*regexp.Regexp)}
}

func (c *patternCache) get(key string) *regexp.Regexp {
	c.mu.RLock()
	re, ok := c.byKey[key]
	c.mu.RUnlock()
	if ok {
		return re
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.byKey[key]; ok {
		return re
	}
	re = regexp.MustCompile(fmt.Sprintf(c.format, regexp.QuoteMeta(key)))
	c.byKey[key] = re
	return re
}

// findList locates key=[...] and returns its items. Items are split on
// commas outside quotes, then trimmed of quotes and whitespace; empty items
// are dropped. Interiors with unbalanced quotes fall back to the first ']'
// and a plain comma split.
func findList(text, key string) ([]string, bool) {
	loc := listPatterns.get(key).FindStringIndex(text)
	if loc == nil {
		return nil, false
	}
	return parseList(text[loc[1]:])
}

// parseList reads list items from rest, the text following an opening '['.
func parseList(rest string) ([]string, bool) {
	interior, ok := scanBracket(rest)
	var items []string
	if ok {
		items, ok = splitQuoted(interior)
	}
	if !ok {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, false
		}
		interior = rest[:end]
		items = strings.Split(interior, ",")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := cleanItem(item); v != "" {
			out = append(out, v)
		}
	}
	return out, true
}

// scanBracket returns the text up to the first ']' outside quotes.
func scanBracket(s string) (string, bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '\'' || c == '"':
			quote = c
		case c == ']':
			return s[:i], true
		}
	}
	return "", false
}

// splitQuoted splits s on commas outside quotes. It fails when a quote is
// left open.
func splitQuoted(s string) ([]string, bool) {
	var items []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			items = append(items, s[start:i])
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, false
	}
	return append(items, s[start:]), true
}

// cleanItem unquotes a properly quoted item, otherwise trims surrounding
// quote and whitespace characters.
func cleanItem(item string) string {
	item = strings.TrimSpace(item)
	if len(item) >= 2 {
		q := item[0]
		if (q == '\'' || q == '"') && item[len(item)-1] == q {
			if v, ok := scanQuoted(item); ok && len(v.raw) == len(item) {
				return strings.TrimSpace(v.text)
			}
		}
	}
	return strings.Trim(item, " \t\r\n'\"")
}

// findScore locates key=<number>.
func findScore(text, key string) *float64 {
	m := scorePatterns.get(key).FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &f
}

// findTexts returns every quoted value of key='...' (or key="...") in
// order of appearance.
func findTexts(text, key string) []string {
	var out []string
	for _, loc := range textPatterns.get(key).FindAllStringIndex(text, -1) {
		if v, ok := scanQuoted(strings.TrimLeft(text[loc[1]:], " ")); ok {
			out = append(out, v.text)
		}
	}
	return out
}

// findText returns the nth (0-based) quoted value of key.
func findText(text, key string, n int) (string, bool) {
	all := findTexts(text, key)
	if n < 0 || n >= len(all) {
		return "", false
	}
	return all[n], true
}

type quoted struct {
	text string
	raw  string // including the delimiters
}

// scanQuoted reads a quoted string at the start of s, stopping at the first
// unescaped closing quote.
func scanQuoted(s string) (quoted, bool) {
	if s == "" || (s[0] != '\'' && s[0] != '"') {
		return quoted{}, false
	}
	q := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		case c == q:
			return quoted{text: b.String(), raw: s[:i+1]}, true
		default:
			b.WriteByte(c)
		}
	}
	return quoted{}, false
}
