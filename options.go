package fil

// Option configures a single Read or Write call.
type Option interface {
	apply(*options)
}

type options struct {
	fallback    any
	hasFallback bool
	safe        bool
	hasSafe     bool
	codec       codecOptions
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

// WithFallback makes Read return v instead of failing when the file does
// not exist. Any other error still fails.
func WithFallback(v any) Option {
	return optionFunc(func(o *options) {
		o.fallback = v
		o.hasFallback = true
	})
}

// WithIndent pretty-prints with n spaces per level. Honored by JSON and
// TOML; JSON Lines rejects it with ErrUnsupportedOption since the format
// is one record per line.
func WithIndent(n int) Option {
	return optionFunc(func(o *options) {
		o.codec.indent = n
		o.codec.hasIndent = true
	})
}

// WithSafeWrite overrides the format's default atomicity. When on, the
// write goes to a temp file renamed into place on success; when off, the
// destination is written directly and a failure may leave a partial file.
func WithSafeWrite(on bool) Option {
	return optionFunc(func(o *options) {
		o.safe = on
		o.hasSafe = true
	})
}

// WithSkipBlank makes JSON Lines reads skip blank lines instead of
// treating them as malformed input.
func WithSkipBlank() Option {
	return optionFunc(func(o *options) {
		o.codec.skipBlank = true
	})
}
