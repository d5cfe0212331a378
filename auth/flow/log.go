package flow

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// Log writes the authorization URL to the logger for out-of-band completion.
type Log struct {
	logger glog.Logger
}

func (l *Log) Present(_ context.Context, authURL string) error {
	l.logger.Info("authorization required", "url", authURL)
	return nil
}

func NewLog(logger glog.Logger) *Log {
	return &Log{logger: glog.Ensure(logger)}
}

// PresenterFunc adapts a function to a presenter.
type PresenterFunc func(ctx context.Context, authURL string) error

func (f PresenterFunc) Present(ctx context.Context, authURL string) error {
	return f(ctx, authURL)
}
