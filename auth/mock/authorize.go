package mock

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
)

// defaultAuthorizeHandler handles /authorize requests. prompt=none succeeds only
// for a login_hint that already consented; any other prompt grants consent for Account.
func (m *AuthorizationService) defaultAuthorizeHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("client_id") != m.ClientID {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}
	redirectURI := query.Get("redirect_uri")
	if redirectURI == "" {
		http.Error(w, "Missing redirect URI", http.StatusBadRequest)
		return
	}
	prompt := query.Get("prompt")
	hint := query.Get("login_hint")

	m.mu.Lock()
	m.stats.Authorize[prompt]++
	nextError := m.nextError
	m.nextError = nil
	var account string
	switch {
	case nextError != nil:
	case prompt == "none":
		if hint != "" && m.consented[hint] {
			account = hint
		}
	default:
		account = m.Account
		m.consented[account] = true
	}
	var code string
	if nextError == nil && account != "" {
		code = randomString()
		m.codes[code] = codeGrant{account: account, challenge: query.Get("code_challenge")}
	}
	m.mu.Unlock()

	values := url.Values{}
	values.Set("state", query.Get("state"))
	switch {
	case nextError != nil:
		values.Set("error", nextError[0])
		values.Set("error_description", nextError[1])
	case code == "":
		values.Set("error", "interaction_required")
		values.Set("error_description", "User interaction is required.")
	default:
		values.Set("code", code)
	}
	http.Redirect(w, r, redirectURI+"?"+values.Encode(), http.StatusFound)
}

func randomString() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
