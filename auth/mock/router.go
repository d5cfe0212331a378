package mock

import (
	"net/http"
)

// Handler routes HTTP requests to the mock provider endpoints.
type Handler struct {
	Server *AuthorizationService
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/.well-known/openid-configuration":
		h.Server.discoveryHandler(w, r)
	case "/authorize":
		if h.Server.AuthorizeHandler != nil {
			h.Server.AuthorizeHandler(w, r)
		} else {
			h.Server.defaultAuthorizeHandler(w, r)
		}
	case "/token":
		if h.Server.TokenHandler != nil {
			h.Server.TokenHandler(w, r)
		} else {
			h.Server.defaultTokenHandler(w, r)
		}
	case "/userinfo":
		if h.Server.UserInfoHandler != nil {
			h.Server.UserInfoHandler(w, r)
		} else {
			h.Server.defaultUserInfoHandler(w, r)
		}
	case "/jwks":
		h.Server.jwksHandler(w, r)
	case "/discovery/drive/v3":
		h.Server.apiDiscoveryHandler(w, r)
	default:
		http.NotFound(w, r)
	}
}
