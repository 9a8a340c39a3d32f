package decoder

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const initialScratch = 4096

// Option configures a Decoder.
type Option func(*Decoder)

// WithFlushTrailing makes the final Decode call emit a non-blank fragment
// that was never terminated by a newline. By default it is dropped.
func WithFlushTrailing() Option {
	return func(d *Decoder) { d.flushTrailing = true }
}

// Decoder turns raw byte chunks into complete text lines. Multi-byte
// characters split across chunks are reassembled; an unterminated trailing
// line is held until the next chunk supplies its newline.
// A Decoder belongs to a single stream and is not safe for concurrent use.
type Decoder struct {
	t             transform.Transformer
	pending       []byte // undecoded bytes of an incomplete character
	held          string // decoded text after the last newline
	scratch       []byte
	flushTrailing bool
}

// New creates a Decoder for a UTF-8 stream. A leading byte order mark is
// stripped and invalid bytes decode to U+FFFD.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		t:       unicode.UTF8BOM.NewDecoder(),
		scratch: make([]byte, initialScratch),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode consumes chunk and returns the lines it completed, without their
// trailing newline. eof marks the last call for the stream; the decoder is
// reset afterwards and may be reused.
func (d *Decoder) Decode(chunk []byte, eof bool) []string {
	src := chunk
	if len(d.pending) > 0 {
		src = append(d.pending, chunk...)
	}
	text, rest := d.transform(src, eof)
	d.pending = rest

	buf := d.held + text
	parts := strings.Split(buf, "\n")
	d.held = parts[len(parts)-1]
	lines := parts[:len(parts)-1]

	if eof {
		if d.flushTrailing && strings.TrimSpace(d.held) != "" {
			lines = append(lines, d.held)
		}
		d.Reset()
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

// Held returns the fragment waiting for its newline.
func (d *Decoder) Held() string {
	return d.held
}

// Reset discards all buffered state.
func (d *Decoder) Reset() {
	d.pending = nil
	d.held = ""
	d.t.Reset()
}

// transform decodes as much of src as forms complete characters. The
// undecodable tail is returned as a copy so the caller's chunk can be reused.
func (d *Decoder) transform(src []byte, atEOF bool) (string, []byte) {
	var out strings.Builder
	for {
		nDst, nSrc, err := d.t.Transform(d.scratch, src, atEOF)
		out.Write(d.scratch[:nDst])
		src = src[nSrc:]
		switch err {
		case transform.ErrShortDst:
			if nDst == 0 && nSrc == 0 {
				d.scratch = make([]byte, 2*len(d.scratch))
			}
		case transform.ErrShortSrc:
			return out.String(), append([]byte(nil), src...)
		default:
			return out.String(), nil
		}
	}
}
