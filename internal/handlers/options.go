package handlers

import "time"

// Option configures a handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	now func() time.Time
}

// WithClock sets the clock used to stamp audit events.
func WithClock(now func() time.Time) Option {
	return func(o *handlerOptions) {
		o.now = now
	}
}

func applyOptions(opts []Option) handlerOptions {
	o := handlerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
