package ideastream

type options struct {
	chunkSize     int
	verbosity     string
	flushTrailing bool
	observer      func(Envelope)
}

// Option configures Decode.
type Option func(*options)

// WithChunkSize sets the size of each read from the stream. Default: 32KB.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithVerbosity sets "minimal", "standard" or "full". At minimal the
// report carries no live log. Default: "standard".
func WithVerbosity(v string) Option {
	return func(o *options) {
		o.verbosity = v
	}
}

// WithFlushTrailing keeps a final line that is not newline-terminated.
// By default it is dropped.
func WithFlushTrailing() Option {
	return func(o *options) {
		o.flushTrailing = true
	}
}

// WithObserver calls fn for every visible envelope as it is decoded, in
// stream order, on the goroutine that called Decode.
func WithObserver(fn func(Envelope)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

func defaultOptions() options {
	return options{verbosity: "standard"}
}
