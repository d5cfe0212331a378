// Package broker decides, per request, whether a cached token is reused, a
// silent reacquisition is attempted or an interactive prompt is forced, and
// classifies the result into a three-way outcome.
package broker

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/hostbridge/auth/cache"
	"github.com/viant/hostbridge/auth/provider"
)

// TokenClient is the identity provider adapter the broker drives.
type TokenClient interface {
	// CheckReady returns a not-ready error until initialization completed.
	CheckReady() error
	RequestToken(ctx context.Context, hint string, interactive bool) (*provider.Grant, error)
}

// Broker is a single-shot acquisition state machine; it keeps no per-request
// state between calls and never retries.
type Broker struct {
	client   TokenClient
	cache    *cache.Cache
	logger   glog.Logger
	observer Observer
	onReauth func(ctx context.Context)
}

// Acquire resolves req into exactly one outcome.
func (b *Broker) Acquire(ctx context.Context, req Request) *Outcome {
	b.enter(Idle)
	outcome := b.acquire(ctx, req)
	b.enter(Resolved)
	return outcome
}

func (b *Broker) acquire(ctx context.Context, req Request) *Outcome {
	b.enter(AwaitingClient)
	if err := b.client.CheckReady(); err != nil {
		return failed(err)
	}
	credential, err := b.cache.Lookup(ctx)
	if err != nil {
		b.logger.Warn("token cache unavailable", "error", err)
		credential = nil
	}
	if !req.ForceRefresh && credential != nil && credential.AccessToken != "" {
		b.enter(CacheHit)
		return granted(credential.AccessToken)
	}

	var hint string
	if credential != nil {
		hint = credential.AccountHint
	}
	interactive := hint == ""
	if interactive {
		b.enter(InteractiveRequest)
	} else {
		b.enter(SilentRequest)
	}
	grant, err := b.client.RequestToken(ctx, hint, interactive)
	switch {
	case err == nil:
	case provider.IsReauthenticationRequired(err):
		if clearErr := b.cache.Clear(ctx); clearErr != nil {
			b.logger.Error("failed to clear token cache", "error", clearErr)
		}
		b.logger.Info("reauthentication required", "reason", provider.Message(err))
		if b.onReauth != nil {
			b.onReauth(ctx)
		}
		return reauthenticationRequired(err)
	default:
		b.logger.Warn("token acquisition failed", "error", err)
		return failed(err)
	}

	update := &cache.Credential{AccessToken: grant.AccessToken}
	if grant.AccountResolved || (grant.Account != "" && grant.Account != hint) {
		update.AccountHint = grant.Account
	}
	if err = b.cache.Set(ctx, update); err != nil {
		b.logger.Error("failed to cache token", "error", err)
	}
	return granted(grant.AccessToken)
}

func (b *Broker) enter(state State) {
	if b.observer != nil {
		b.observer(state)
	}
}

// New creates a broker over client and cache.
func New(client TokenClient, aCache *cache.Cache, options ...Option) *Broker {
	ret := &Broker{client: client, cache: aCache, logger: glog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
