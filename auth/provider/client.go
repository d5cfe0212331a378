// Package provider adapts an OAuth2 identity provider to a request/response
// token API.
//
// A Client moves through Uninitialized, Ready and Failed. Each RequestToken
// call owns its own pending entry keyed by the OAuth2 state parameter, so
// concurrent silent requests never observe each other's results; at most one
// interactive prompt may be in flight.
package provider

import (
	"context"
	"net/http"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/hostbridge/auth/flow"
	"github.com/viant/hostbridge/internal/pending"
	"golang.org/x/oauth2"
)

// State is the client lifecycle state.
type State int

const (
	Uninitialized State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Presenter shows an authorization URL to the user (or follows it headlessly).
type Presenter interface {
	Present(ctx context.Context, authURL string) error
}

// Grant is a successful token acquisition.
type Grant struct {
	AccessToken string
	// Account is the hint the request was made with, or the identifier resolved
	// through the profile endpoint when no hint was given.
	Account string
	// AccountResolved reports whether Account was looked up by this request.
	AccountResolved bool
}

// attempt is the completion handle of a single RequestToken call.
type attempt struct {
	result chan callbackResult
}

type callbackResult struct {
	code        string
	errCode     string
	description string
}

// Client is the identity token client adapter.
type Client struct {
	config     *Config
	presenter  Presenter
	httpClient *http.Client
	logger     glog.Logger
	pending    *pending.Manager[*attempt]

	mu          sync.RWMutex
	state       State
	initErr     error
	oauth       *oauth2.Config
	userInfoURL string
	callback    *callbackServer

	interactive sync.Mutex
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Ready reports whether Initialize completed successfully.
func (c *Client) Ready() bool {
	return c.State() == Ready
}

// CheckReady returns a not-ready error unless Initialize succeeded.
func (c *Client) CheckReady() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Ready {
		return notReady(c.initErr)
	}
	return nil
}

// Initialize resolves provider endpoints, loads API discovery documents and
// starts the loopback redirect endpoint. A failure is terminal: every later
// Initialize returns the same error.
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Ready:
		return nil
	case Failed:
		return c.initErr
	}
	oauthConfig, userInfoURL, callback, err := c.initialize(ctx)
	if err != nil {
		c.state = Failed
		c.initErr = initializationFailed(err)
		c.logger.Error("token client initialization failed", "error", err)
		return c.initErr
	}
	c.oauth = oauthConfig
	c.userInfoURL = userInfoURL
	c.callback = callback
	c.state = Ready
	c.logger.Debug("token client ready", "redirect", oauthConfig.RedirectURL)
	return nil
}

func (c *Client) initialize(ctx context.Context) (*oauth2.Config, string, *callbackServer, error) {
	cfg := c.config
	endpoint := oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	userInfoURL := cfg.UserInfoURL
	if !cfg.hasEndpoints() || userInfoURL == "" {
		doc, err := c.fetchDiscovery(ctx, cfg.DiscoveryURL)
		if err != nil {
			return nil, "", nil, err
		}
		if endpoint.AuthURL == "" {
			endpoint.AuthURL = doc.AuthorizationEndpoint
		}
		if endpoint.TokenURL == "" {
			endpoint.TokenURL = doc.TokenEndpoint
		}
		if userInfoURL == "" {
			userInfoURL = doc.UserinfoEndpoint
		}
	}
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		return nil, "", nil, goerrors.New("provider metadata has no authorization or token endpoint", goerrors.CategoryExternal)
	}
	for _, URL := range cfg.APIDiscoveryURLs {
		if err := c.loadAPIDiscovery(ctx, URL, cfg.APIKey); err != nil {
			return nil, "", nil, err
		}
	}
	target, err := cfg.callbackTarget()
	if err != nil {
		return nil, "", nil, err
	}
	callback, err := newCallbackServer(target.addr, target.path, c.completionHandler())
	if err != nil {
		return nil, "", nil, err
	}
	redirectURL := target.redirectURL(callback.baseURL, callback.port)
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURL,
		Scopes:       cfg.Scopes,
	}, userInfoURL, callback, nil
}

// RedirectURL returns the registered redirect URL once ready.
func (c *Client) RedirectURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.oauth == nil {
		return ""
	}
	return c.oauth.RedirectURL
}

// RequestToken runs exactly one authorization prompt cycle. With interactive
// false the provider is asked not to show any UI (prompt=none) and to bias
// towards hint; with interactive true a consent prompt is requested.
func (c *Client) RequestToken(ctx context.Context, hint string, interactive bool) (*Grant, error) {
	c.mu.RLock()
	state, oauthConfig, userInfoURL, initErr := c.state, c.oauth, c.userInfoURL, c.initErr
	c.mu.RUnlock()
	if state != Ready {
		return nil, notReady(initErr)
	}
	if interactive {
		if !c.interactive.TryLock() {
			return nil, promptInFlight()
		}
		defer c.interactive.Unlock()
	}

	kind := "silent"
	prompt := "none"
	if interactive {
		kind, prompt = "interactive", "consent"
	}
	if expired, err := c.pending.Sweep(ctx); err == nil && len(expired) > 0 {
		c.logger.Debug("expired prompts removed", "count", len(expired))
	}
	handle := &attempt{result: make(chan callbackResult, 1)}
	p, err := c.pending.Create(ctx, pending.Spec[*attempt]{Kind: kind, TTL: c.config.PromptTimeout, Data: handle})
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()
	options := []oauth2.AuthCodeOption{
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", prompt),
	}
	if hint != "" {
		options = append(options, oauth2.SetAuthURLParam("login_hint", hint))
	}
	authURL := oauthConfig.AuthCodeURL(p.ID, options...)
	c.logger.Debug("requesting token", "kind", kind, "id", p.ID)

	result, err := c.await(ctx, p.ID, authURL, handle)
	if err != nil {
		return nil, err
	}
	if result.errCode != "" {
		return nil, providerError(result.errCode, result.description)
	}
	if result.code == "" {
		return nil, providerError("", "authorization response carried no code")
	}
	token, err := oauthConfig.Exchange(c.exchangeContext(ctx), result.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, exchangeError(err)
	}
	grant := &Grant{AccessToken: token.AccessToken, Account: hint}
	if hint == "" && userInfoURL != "" {
		account, err := c.account(ctx, userInfoURL, token.AccessToken)
		if err != nil {
			c.logger.Warn("failed to resolve account", "error", err)
		} else {
			grant.Account = account
			grant.AccountResolved = true
		}
	}
	return grant, nil
}

// await presents authURL and blocks until the redirect for id arrives, the
// prompt times out or ctx is done. An abandoned entry is cancelled so a late
// redirect is rejected.
func (c *Client) await(ctx context.Context, id, authURL string, handle *attempt) (callbackResult, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.config.PromptTimeout)
	defer cancel()
	presented := make(chan error, 1)
	go func() {
		presented <- c.presenter.Present(waitCtx, authURL)
	}()
	for {
		select {
		case result := <-handle.result:
			return result, nil
		case err := <-presented:
			presented = nil
			if err != nil {
				_, _ = c.pending.Cancel(context.Background(), id)
				return callbackResult{}, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to present authorization prompt").
					WithTextCode(TextCodeProviderError)
			}
		case <-waitCtx.Done():
			_, _ = c.pending.Cancel(context.Background(), id)
			select {
			case result := <-handle.result:
				return result, nil
			default:
			}
			return callbackResult{}, goerrors.Wrap(waitCtx.Err(), goerrors.CategoryExternal, "authorization prompt was not completed").
				WithTextCode(TextCodeProviderError)
		}
	}
}

func (c *Client) exchangeContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// Close stops the redirect endpoint.
func (c *Client) Close() error {
	c.mu.Lock()
	callback := c.callback
	c.callback = nil
	c.mu.Unlock()
	if callback == nil {
		return nil
	}
	return callback.close()
}

// New creates an uninitialized client.
func New(config *Config, options ...Option) *Client {
	if config == nil {
		config = &Config{}
	}
	config.Init()
	ret := &Client{
		config:     config,
		httpClient: http.DefaultClient,
		logger:     glog.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.presenter == nil {
		ret.presenter = flow.NewBrowser(ret.logger)
	}
	if ret.pending == nil {
		ret.pending = pending.NewManager[*attempt](nil)
	}
	return ret
}
