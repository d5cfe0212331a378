package hostbridge

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	AllowOriginHeader      = "Access-Control-Allow-Origin"
	AllowHeadersHeader     = "Access-Control-Allow-Headers"
	AllowMethodsHeader     = "Access-Control-Allow-Methods"
	RequestMethodHeader    = "Access-Control-Request-Method"
	AllowCredentialsHeader = "Access-Control-Allow-Credentials"
	MaxAgeHeader           = "Access-Control-Max-Age"
	Separator              = ", "
)

// Middleware is a function that takes an http.Handler and returns an http.Handler
type Middleware func(next http.Handler) http.Handler

// ChainMiddlewareHandlers chains middleware so the first one is outermost.
func ChainMiddlewareHandlers(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Cors lets a UI core served from another origin (e.g. a webview scheme) reach the loopback endpoint.
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

// Middleware sets CORS headers and answers preflight requests.
func (c *Cors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.setHeaders(w, r)
		if r.Method == http.MethodOptions && r.Header.Get(RequestMethodHeader) != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(writer http.ResponseWriter, request *http.Request) {
	origin := request.Header.Get("Origin")
	for _, allowed := range c.AllowOrigins {
		if allowed == "*" || allowed == origin {
			if origin == "" {
				origin = "*"
			}
			writer.Header().Set(AllowOriginHeader, origin)
			break
		}
	}
	if requestMethod := request.Header.Get(RequestMethodHeader); requestMethod != "" {
		writer.Header().Set(AllowMethodsHeader, requestMethod)
	}
	allowedHeaders := "Content-Type,Mcp-Session-Id"
	if len(c.AllowHeaders) > 0 {
		allowedHeaders = strings.Join(c.AllowHeaders, Separator)
	}
	writer.Header().Set(AllowHeadersHeader, allowedHeaders)
	if c.AllowCredentials != nil {
		writer.Header().Set(AllowCredentialsHeader, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		writer.Header().Set(MaxAgeHeader, strconv.Itoa(int(*c.MaxAge)))
	}
}

// originValidationMiddleware rejects browser requests from origins outside allowed;
// requests without an Origin header pass.
func originValidationMiddleware(allowed []string) Middleware {
	return func(next http.Handler) http.Handler {
		allowedMap := make(map[string]bool, len(allowed))
		for _, v := range allowed {
			allowedMap[v] = true
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedMap["*"] || allowedMap[origin] {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "origin not allowed", http.StatusForbidden)
		})
	}
}
