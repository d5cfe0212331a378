package mock

import (
	"encoding/json"
	"net/http"
	"strings"
)

// defaultUserInfoHandler returns the profile of the account a bearer token was issued to.
func (m *AuthorizationService) defaultUserInfoHandler(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.stats.UserInfo++
	m.mu.Unlock()
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		w.Header().Set("WWW-Authenticate", `Bearer realm="userinfo"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	m.mu.Lock()
	account, ok := m.tokens[token]
	m.mu.Unlock()
	if !ok {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"sub":            "sub-" + account,
		"email":          account,
		"email_verified": true,
	})
}
