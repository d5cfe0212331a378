package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sync"
)

const (
	DefaultAccount = "user@example.com"
	DefaultAPIKey  = "test_api_key"
)

// Stats counts requests per endpoint.
type Stats struct {
	Authorize   map[string]int // by prompt value
	Token       int
	UserInfo    int
	Discovery   int
	APIDiscover int
}

type codeGrant struct {
	account   string
	challenge string
}

// AuthorizationService simulates an OpenID Connect provider.
type AuthorizationService struct {
	PrivateKey   *rsa.PrivateKey
	Issuer       string
	ClientID     string
	ClientSecret string
	APIKey       string
	// Account is the identity granted on a consent prompt.
	Account string

	TokenHandler     func(w http.ResponseWriter, r *http.Request)
	AuthorizeHandler func(w http.ResponseWriter, r *http.Request)
	UserInfoHandler  func(w http.ResponseWriter, r *http.Request)

	mu        sync.Mutex
	consented map[string]bool
	codes     map[string]codeGrant
	tokens    map[string]string // access token -> account
	nextError []string          // error code, description
	stats     Stats
}

// Consent marks account as having granted consent, enabling prompt=none.
func (m *AuthorizationService) Consent(account string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consented[account] = true
}

// Revoke drops consent so the next prompt=none fails with interaction_required.
func (m *AuthorizationService) Revoke(account string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.consented, account)
}

// FailNext makes the next authorization redirect carry the given error.
func (m *AuthorizationService) FailNext(code, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextError = []string{code, description}
}

// Stats returns a copy of the request counters.
func (m *AuthorizationService) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := m.stats
	ret.Authorize = map[string]int{}
	for k, v := range m.stats.Authorize {
		ret.Authorize[k] = v
	}
	return ret
}

// Requests returns the number of authorize and token requests made so far.
func (m *AuthorizationService) Requests() int {
	stats := m.Stats()
	total := stats.Token
	for _, v := range stats.Authorize {
		total += v
	}
	return total
}

// Option configures the mock service.
type Option func(*AuthorizationService)

func WithClient(clientID, clientSecret string) Option {
	return func(m *AuthorizationService) {
		m.ClientID = clientID
		m.ClientSecret = clientSecret
	}
}

func WithAccount(account string) Option {
	return func(m *AuthorizationService) {
		m.Account = account
	}
}

// NewAuthorizationService creates a new mock identity provider.
func NewAuthorizationService(opts ...Option) (*AuthorizationService, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %v", err)
	}
	service := &AuthorizationService{
		PrivateKey:   privateKey,
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		APIKey:       DefaultAPIKey,
		Account:      DefaultAccount,
		consented:    map[string]bool{},
		codes:        map[string]codeGrant{},
		tokens:       map[string]string{},
		stats:        Stats{Authorize: map[string]int{}},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Register registers HTTP handlers for all mock endpoints onto the given ServeMux.
func (m *AuthorizationService) Register(mux *http.ServeMux) {
	mux.Handle("/", &Handler{Server: m})
}

// Handler returns an http.Handler for all mock endpoints.
func (m *AuthorizationService) Handler() http.Handler {
	mux := http.NewServeMux()
	m.Register(mux)
	return mux
}
