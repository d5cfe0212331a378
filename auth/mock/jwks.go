package mock

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/viant/mcp-protocol/oauth2/meta"
)

// jwksHandler exposes the signing key so tests can verify issued tokens.
func (m *AuthorizationService) jwksHandler(w http.ResponseWriter, _ *http.Request) {
	jwks := meta.JSONWebKeySet{Keys: []meta.JSONWebKey{m.JWK()}}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(jwks)
}

// JWK returns the public signing key; its kid is derived from the modulus.
func (m *AuthorizationService) JWK() meta.JSONWebKey {
	pubKey := m.PrivateKey.Public().(*rsa.PublicKey)
	nBytes := pubKey.N.Bytes()
	eBytes := new(big.Int).SetInt64(int64(pubKey.E)).Bytes()
	kid := sha256.Sum256(nBytes)
	return meta.JSONWebKey{
		Kty: "RSA",
		Use: "sig",
		Alg: "RS256",
		Kid: base64.RawURLEncoding.EncodeToString(kid[:8]),
		N:   base64.RawURLEncoding.EncodeToString(nBytes),
		E:   base64.RawURLEncoding.EncodeToString(eBytes),
	}
}
