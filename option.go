package hostbridge

import (
	"context"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/hostbridge/auth/provider"
	"github.com/viant/hostbridge/effect/clipboard"
	"github.com/viant/hostbridge/storage"
)

// Option customises a Service.
type Option func(s *Service)

// WithLogger sets the logger shared by all components.
func WithLogger(logger glog.Logger) Option {
	return func(s *Service) {
		s.logger = glog.Ensure(logger)
	}
}

// WithLoggerProvider sets the provider used to create named component loggers.
func WithLoggerProvider(provider glog.LoggerProvider) Option {
	return func(s *Service) {
		s.loggers = provider
	}
}

// WithStore replaces the store selected by Options.StorageURL.
func WithStore(store storage.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithPresenter sets how authorization URLs are shown to the user.
func WithPresenter(presenter provider.Presenter) Option {
	return func(s *Service) {
		s.presenter = presenter
	}
}

// WithHTTPClient sets the http client used to reach the identity provider and speech endpoint.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithClipboardRunner replaces the shell used to read the clipboard.
func WithClipboardRunner(run clipboard.RunFunc) Option {
	return func(s *Service) {
		s.clipboardRun = run
	}
}

// OnReauthenticationRequired registers a hook invoked after stale consent cleared the token cache.
func OnReauthenticationRequired(fn func(ctx context.Context)) Option {
	return func(s *Service) {
		s.onReauth = fn
	}
}
