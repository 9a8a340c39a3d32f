// Package testdata embeds captured analysis streams used across tests.
package testdata

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed streams/*.ndjson
var streams embed.FS

// Stream returns the raw bytes of the named capture (without extension).
func Stream(name string) ([]byte, error) {
	b, err := streams.ReadFile(path.Join("streams", name+".ndjson"))
	if err != nil {
		return nil, fmt.Errorf("testdata stream %q: %w", name, err)
	}
	return b, nil
}

// MustStream is Stream for test setup.
func MustStream(name string) []byte {
	b, err := Stream(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Names lists the available captures.
func Names() []string {
	entries, _ := fs.ReadDir(streams, "streams")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".ndjson"))
	}
	sort.Strings(names)
	return names
}
