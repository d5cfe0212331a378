package provider

import (
	"net"
	"net/url"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/oauth2"
)

const (
	// DefaultDiscoveryURL is Google's OpenID Connect discovery document.
	DefaultDiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"
	// DefaultCallbackAddr binds the redirect endpoint to loopback on a free port.
	DefaultCallbackAddr  = "127.0.0.1:0"
	DefaultPromptTimeout = 5 * time.Minute

	ScopeUserInfoEmail = "https://www.googleapis.com/auth/userinfo.email"
	ScopeDriveFile     = "https://www.googleapis.com/auth/drive.file"

	DefaultCallbackPath = "/callback"
)

// DefaultScopes are an email-identity scope and an application-file scope.
var DefaultScopes = []string{ScopeUserInfoEmail, ScopeDriveFile}

// Config describes the identity provider and the client registered with it.
type Config struct {
	ClientID     string   `json:"clientId,omitempty"`
	ClientSecret string   `json:"clientSecret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`

	// DiscoveryURL is fetched on Initialize unless AuthURL and TokenURL are both set.
	DiscoveryURL string `json:"discoveryUrl,omitempty"`
	AuthURL      string `json:"authUrl,omitempty"`
	TokenURL     string `json:"tokenUrl,omitempty"`
	UserInfoURL  string `json:"userInfoUrl,omitempty"`

	// APIKey and APIDiscoveryURLs initialize the general-purpose API client:
	// every discovery document must load with the key before the client is ready.
	APIKey           string   `json:"apiKey,omitempty"`
	APIDiscoveryURLs []string `json:"apiDiscoveryUrls,omitempty"`

	// CallbackAddr and CallbackPath locate the redirect endpoint. A loopback
	// RedirectURL overrides the default address with its own host, port and path.
	CallbackAddr  string        `json:"callbackAddr,omitempty"`
	CallbackPath  string        `json:"callbackPath,omitempty"`
	RedirectURL   string        `json:"redirectUrl,omitempty"`
	PromptTimeout time.Duration `json:"promptTimeout,omitempty"`
}

// Init applies defaults.
func (c *Config) Init() {
	if len(c.Scopes) == 0 {
		c.Scopes = append([]string(nil), DefaultScopes...)
	}
	if c.DiscoveryURL == "" {
		c.DiscoveryURL = DefaultDiscoveryURL
	}
	if c.CallbackAddr == "" {
		c.CallbackAddr = DefaultCallbackAddr
	}
	if c.CallbackPath == "" {
		c.CallbackPath = DefaultCallbackPath
	}
	if c.PromptTimeout == 0 {
		c.PromptTimeout = DefaultPromptTimeout
	}
}

// hasEndpoints reports whether discovery can be skipped.
func (c *Config) hasEndpoints() bool {
	return c.AuthURL != "" && c.TokenURL != ""
}

// callbackTarget is where the redirect endpoint listens and how its redirect
// URL is registered with the provider.
type callbackTarget struct {
	addr     string
	path     string
	redirect *url.URL
	// listenerPort completes a port-less loopback redirect with the bound port.
	listenerPort bool
}

// redirectURL returns the registered redirect URL for a listener bound at
// baseURL with the given port.
func (t *callbackTarget) redirectURL(baseURL, port string) string {
	if t.redirect == nil {
		return baseURL + t.path
	}
	if !t.listenerPort {
		return t.redirect.String()
	}
	redirect := *t.redirect
	redirect.Host = net.JoinHostPort(redirect.Hostname(), port)
	return redirect.String()
}

func (c *Config) callbackTarget() (*callbackTarget, error) {
	ret := &callbackTarget{addr: c.CallbackAddr, path: c.CallbackPath}
	if c.RedirectURL == "" {
		return ret, nil
	}
	redirect, err := url.Parse(c.RedirectURL)
	if err != nil || redirect.Host == "" {
		return nil, goerrors.New("invalid redirect URL: "+c.RedirectURL, goerrors.CategoryValidation)
	}
	ret.redirect = redirect
	if c.CallbackAddr != DefaultCallbackAddr || !isLoopback(redirect.Hostname()) {
		return ret, nil
	}
	ret.path = redirect.Path
	if ret.path == "" {
		ret.path = "/"
	}
	if port := redirect.Port(); port != "" {
		ret.addr = net.JoinHostPort(redirect.Hostname(), port)
		return ret, nil
	}
	ret.listenerPort = true
	return ret, nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// FromOAuth2 builds a Config from a loaded *oauth2.Config (e.g. a scy secret).
func FromOAuth2(config *oauth2.Config) *Config {
	ret := &Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		AuthURL:      config.Endpoint.AuthURL,
		TokenURL:     config.Endpoint.TokenURL,
		RedirectURL:  config.RedirectURL,
	}
	if len(config.Scopes) > 0 {
		ret.Scopes = append([]string(nil), config.Scopes...)
	}
	return ret
}
