package provider

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/viant/hostbridge/internal/pending"
)

const callbackPage = `<!doctype html><html><head><meta charset="utf-8"><title>Authorization</title></head>
<body><p>Authorization complete. You can close this window.</p></body></html>`

// callbackServer is the loopback endpoint the provider redirects to.
type callbackServer struct {
	baseURL string
	port    string
	srv     *http.Server
}

func newCallbackServer(addr, path string, handler http.Handler) (*callbackServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	ret := &callbackServer{
		baseURL: "http://" + ln.Addr().String(),
		port:    strconv.Itoa(ln.Addr().(*net.TCPAddr).Port),
		srv:     &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
	}
	go func() {
		_ = ret.srv.Serve(ln)
	}()
	return ret, nil
}

func (s *callbackServer) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// completionHandler delivers the redirect to the request addressed by state.
func (c *Client) completionHandler() http.Handler {
	return pending.CompletionHandler(c.pending, pending.StateParam, func(ctx context.Context, p pending.Pending[*attempt], w http.ResponseWriter, r *http.Request) error {
		query := r.URL.Query()
		result := callbackResult{
			code:        query.Get("code"),
			errCode:     query.Get("error"),
			description: query.Get("error_description"),
		}
		select {
		case p.Data.result <- result:
		default:
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := w.Write([]byte(callbackPage))
		return err
	})
}
