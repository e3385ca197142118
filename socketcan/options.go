package socketcan

import "time"

// DefaultReadTimeout bounds how long ReadFrame blocks on an idle bus.
const DefaultReadTimeout = 250 * time.Millisecond

// Option configures a Conn.
type Option func(*options)

type options struct {
	readTimeout time.Duration
}

func defaultOptions() options {
	return options{readTimeout: DefaultReadTimeout}
}

// WithReadTimeout sets the receive timeout. Zero or negative blocks until
// a frame arrives or the Conn is closed.
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}
