package eventbus

import "github.com/kochabx/apikit/log"

type Option func(*Bus)

// WithLogger sets the logger used to report listener failures.
func WithLogger(logger *log.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithObserver sets an Observer, typically metrics.
func WithObserver(o Observer) Option {
	return func(b *Bus) {
		b.observer = o
	}
}
