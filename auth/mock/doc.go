// Package mock provides an in-process OpenID identity provider that
// facilitates testing the token broker without network round-trips to a real
// provider.
//
// It implements discovery, authorization (including prompt=none semantics),
// PKCE-checked code exchange, user info, JWKS and an API discovery document.
package mock
