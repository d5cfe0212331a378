package mock

import (
	"encoding/json"
	"net/http"

	"github.com/viant/afs/url"
)

func (m *AuthorizationService) discoveryHandler(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	m.stats.Discovery++
	m.mu.Unlock()
	metadata := map[string]interface{}{
		"issuer":                                m.Issuer,
		"authorization_endpoint":                url.Join(m.Issuer, "authorize"),
		"token_endpoint":                        url.Join(m.Issuer, "token"),
		"userinfo_endpoint":                     url.Join(m.Issuer, "userinfo"),
		"jwks_uri":                              url.Join(m.Issuer, "jwks"),
		"response_types_supported":              []string{"code"},
		"code_challenge_methods_supported":      []string{"S256"},
		"id_token_signing_alg_values_supported": []string{"RS256"},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(metadata)
}

// apiDiscoveryHandler serves a minimal API discovery document guarded by an API key.
func (m *AuthorizationService) apiDiscoveryHandler(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.stats.APIDiscover++
	m.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Query().Get("key") != m.APIKey {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 400, "message": "API key not valid. Please pass a valid API key."},
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"kind": "discovery#restDescription", "name": "drive", "version": "v3"})
}

// APIDiscoveryURL returns the URL of the API discovery document.
func (m *AuthorizationService) APIDiscoveryURL() string {
	return url.Join(m.Issuer, "discovery/drive/v3")
}

// DiscoveryURL returns the OpenID discovery URL.
func (m *AuthorizationService) DiscoveryURL() string {
	return url.Join(m.Issuer, ".well-known/openid-configuration")
}
