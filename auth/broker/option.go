package broker

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// Option customises a Broker.
type Option func(b *Broker)

func WithLogger(logger glog.Logger) Option {
	return func(b *Broker) {
		b.logger = glog.Ensure(logger)
	}
}

// WithObserver reports every state transition.
func WithObserver(observer Observer) Option {
	return func(b *Broker) {
		b.observer = observer
	}
}

// OnReauthenticationRequired is called after the cache was cleared so the
// embedding application can restart its session bootstrap.
func OnReauthenticationRequired(fn func(ctx context.Context)) Option {
	return func(b *Broker) {
		b.onReauth = fn
	}
}
