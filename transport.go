package hostbridge

import (
	"context"
	"net/http"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
	"github.com/viant/jsonrpc/transport/server/stdio"
)

// NewHandler creates a JSON-RPC handler serving every registered capability.
func (s *Service) NewHandler(ctx context.Context, aTransport transport.Transport) transport.Handler {
	return s.registry.NewHandler(ctx, aTransport)
}

// Stdio returns a stdio JSON-RPC server.
func (s *Service) Stdio(ctx context.Context) *stdio.Server {
	return stdio.New(ctx, s.NewHandler)
}

// HTTP returns a streamable HTTP JSON-RPC server bound to addr.
func (s *Service) HTTP(_ context.Context, addr string) *http.Server {
	options := s.options.Transport
	if addr == "" {
		addr = options.Addr
	}
	handler := streamable.New(s.NewHandler, streamable.WithURI(options.StreamableURI))
	var middlewares []Middleware
	if options.Cors != nil {
		middlewares = append(middlewares, options.Cors.Middleware, originValidationMiddleware(options.Cors.AllowOrigins))
	}
	mux := http.NewServeMux()
	mux.Handle(options.StreamableURI, ChainMiddlewareHandlers(handler, middlewares...))
	return &http.Server{Addr: addr, Handler: mux}
}
