package provider

import (
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
)

// Option customises a Client.
type Option func(c *Client)

// WithPresenter sets how authorization URLs reach the user.
func WithPresenter(presenter Presenter) Option {
	return func(c *Client) {
		c.presenter = presenter
	}
}

// WithHTTPClient sets the client used for discovery, token exchange and user info.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger glog.Logger) Option {
	return func(c *Client) {
		c.logger = glog.Ensure(logger)
	}
}
