package mock

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// defaultTokenHandler exchanges an authorization code, verifying PKCE.
func (m *AuthorizationService) defaultTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	m.mu.Lock()
	m.stats.Token++
	m.mu.Unlock()

	if r.FormValue("grant_type") != "authorization_code" {
		writeTokenError(w, "unsupported_grant_type", "Unsupported grant type")
		return
	}
	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.FormValue("client_id")
		clientSecret = r.FormValue("client_secret")
	}
	if clientID != m.ClientID || clientSecret != m.ClientSecret {
		writeTokenError(w, "invalid_client", "Invalid client credentials")
		return
	}
	code := r.FormValue("code")
	m.mu.Lock()
	grant, ok := m.codes[code]
	delete(m.codes, code)
	m.mu.Unlock()
	if !ok {
		writeTokenError(w, "invalid_grant", "Unknown or used authorization code")
		return
	}
	if grant.challenge != "" && challenge(r.FormValue("code_verifier")) != grant.challenge {
		writeTokenError(w, "invalid_grant", "PKCE verification failed")
		return
	}
	expiresIn := 3600
	accessToken, err := m.createJWT(clientID, grant.account, "access_token", time.Duration(expiresIn)*time.Second)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	idToken, err := m.createJWT(clientID, grant.account, "id_token", time.Duration(expiresIn)*time.Second)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	m.mu.Lock()
	m.tokens[accessToken] = grant.account
	m.mu.Unlock()
	response := map[string]interface{}{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
		"id_token":     idToken,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func writeTokenError(w http.ResponseWriter, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "error_description": description})
}

func challenge(verifier string) string {
	sha := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sha[:])
}
