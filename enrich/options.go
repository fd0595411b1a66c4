package enrich

import "github.com/rs/zerolog"

// Option configures a manager.
type Option func(*options)

type options struct {
	policy Policy
	logger zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		policy: Global,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPolicy makes the manager merge collections according to p instead
// of the process-wide strategy.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
