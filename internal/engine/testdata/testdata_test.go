package testdata

import (
	"bytes"
	"testing"
)

func TestStreamsLoad(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no embedded streams")
	}
	for _, name := range names {
		b, err := Stream(name)
		if err != nil {
			t.Fatalf("Stream(%q) error: %v", name, err)
		}
		if len(b) == 0 {
			t.Errorf("stream %q is empty", name)
		}
		// Upstream always terminates lines.
		if !bytes.HasSuffix(b, []byte("\n")) {
			t.Errorf("stream %q does not end with a newline", name)
		}
	}
}

func TestStreamUnknown(t *testing.T) {
	if _, err := Stream("does-not-exist"); err == nil {
		t.Fatal("expected error for unknown stream")
	}
}
