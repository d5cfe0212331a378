package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/hostbridge"
	"github.com/viant/hostbridge/auth/provider"
	"github.com/viant/hostbridge/capability"
	"github.com/viant/hostbridge/effect/export"
	"github.com/viant/scy/auth/authorizer"
)

// Config builds service options from merged flags.
func Config(ctx context.Context, options *Options, promptTimeout time.Duration) (*hostbridge.Options, error) {
	providerConfig, err := providerConfig(ctx, options)
	if err != nil {
		return nil, err
	}
	providerConfig.PromptTimeout = promptTimeout
	if options.APIKey != "" {
		providerConfig.APIKey = options.APIKey
	}
	ret := &hostbridge.Options{
		Name:       "hostbridge",
		StorageURL: options.StorageURL,
		Provider:   providerConfig,
		Export:     export.Config{OutputURL: options.ExportURL, MediaBaseURLs: options.MediaURLs},
		Bridge: capability.Config{
			LogCallErrors:    options.LogCallErrors,
			LogInteropErrors: options.LogInteropErrors,
		},
		Transport: &hostbridge.TransportOptions{
			Type: options.Transport,
			Addr: options.Addr,
		},
	}
	if len(options.AllowOrigins) > 0 {
		ret.Transport.Cors = &hostbridge.Cors{AllowOrigins: options.AllowOrigins}
	}
	return ret, nil
}

// providerConfig loads the OAuth2 client through scy when a config URL is given.
func providerConfig(ctx context.Context, options *Options) (*provider.Config, error) {
	if options.OAuth2ConfigURL == "" {
		return &provider.Config{ClientID: options.ClientID, ClientSecret: options.ClientSecret}, nil
	}
	configURL := options.OAuth2ConfigURL
	if options.EncryptionKey != "" {
		configURL += "|" + options.EncryptionKey
	}
	auth := authorizer.New()
	oAuthConfig := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := auth.EnsureConfig(ctx, oAuthConfig); err != nil {
		return nil, fmt.Errorf("failed to load oauth2 config %q: %w", options.OAuth2ConfigURL, err)
	}
	return provider.FromOAuth2(oAuthConfig.Config), nil
}
