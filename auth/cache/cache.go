// Package cache persists the last granted access token and the account it was
// granted for.
package cache

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/viant/hostbridge/storage"
)

const (
	// DefaultNamespace prefixes every key owned by the cache.
	DefaultNamespace = "hostbridge_google_"

	tokenKey   = "token"
	accountKey = "account"
)

// Credential is the cached result of a successful acquisition.
type Credential struct {
	AccessToken string
	AccountHint string
}

// Cache stores a single credential in two entries: token and account hint.
type Cache struct {
	namespace string
	store     storage.Store
}

// Option customises a Cache.
type Option func(c *Cache)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(namespace string) Option {
	return func(c *Cache) {
		c.namespace = namespace
	}
}

// Lookup returns the cached credential, or nil when no token is cached.
// An account hint without a token is returned with an empty AccessToken.
func (c *Cache) Lookup(ctx context.Context) (*Credential, error) {
	token, hasToken, err := c.store.Get(ctx, tokenKey)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read cached token")
	}
	account, hasAccount, err := c.store.Get(ctx, accountKey)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read cached account")
	}
	if !hasToken && !hasAccount {
		return nil, nil
	}
	return &Credential{AccessToken: string(token), AccountHint: string(account)}, nil
}

// Set stores the token and, when present, the account hint.
// An empty AccountHint leaves a previously cached hint in place.
func (c *Cache) Set(ctx context.Context, credential *Credential) error {
	if credential == nil || credential.AccessToken == "" {
		return goerrors.New("credential has no access token", goerrors.CategoryBadInput)
	}
	if credential.AccountHint != "" {
		if err := c.store.Put(ctx, accountKey, []byte(credential.AccountHint)); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to cache account")
		}
	}
	if err := c.store.Put(ctx, tokenKey, []byte(credential.AccessToken)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to cache token")
	}
	return nil
}

// Clear removes both the token and the account hint.
func (c *Cache) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{tokenKey, accountKey} {
		if err := c.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return goerrors.Wrap(goerrors.Join(errs...), goerrors.CategoryInternal, "failed to clear credential cache")
	}
	return nil
}

// New creates a cache over store.
func New(store storage.Store, options ...Option) *Cache {
	ret := &Cache{namespace: DefaultNamespace}
	for _, opt := range options {
		opt(ret)
	}
	ret.store = storage.Prefixed(store, ret.namespace)
	return ret
}
