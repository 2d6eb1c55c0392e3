package json

import (
	"io"
	"log/slog"
)

// DefaultMaxDepth bounds recursion in the parser and printer. Malformed
// or adversarial inputs fail with CodeTooDeep instead of exhausting the
// stack.
const DefaultMaxDepth = 128

type options struct {
	maxDepth int
	logger   *slog.Logger
}

// Option configures Parse, Print, and Append.
type Option func(*options)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxDepth = n
		}
	}
}

// WithLogger sets the diagnostic logger. Diagnostics are a side channel
// only and never affect results or control flow.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
