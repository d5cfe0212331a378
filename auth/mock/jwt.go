package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// createJWT creates a signed JWT for clientID and subject with the given type and expiry.
func (m *AuthorizationService) createJWT(clientID, subject, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   m.Issuer,
		"sub":   subject,
		"aud":   clientID,
		"exp":   now.Add(expiry).Unix(),
		"iat":   now.Unix(),
		"jti":   randomString(),
		"typ":   tokenType,
		"email": subject,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = m.JWK().Kid
	return token.SignedString(m.PrivateKey)
}
