package pending

import (
	"context"
	"net/http"
)

// IDExtractor extracts a pending id from the request.
type IDExtractor func(r *http.Request) (string, error)

// StateParamName is the OAuth2 query parameter carrying the pending id.
const StateParamName = "state"

// StateParam extracts the id from the OAuth2 "state" query parameter.
func StateParam(r *http.Request) (string, error) {
	return r.URL.Query().Get(StateParamName), nil
}

// CompletionHandler resolves the pending addressed by the request, removes it
// from the manager and passes it to next. Unknown or expired ids get 404.
func CompletionHandler[T any](manager *Manager[T], extract IDExtractor, next func(context.Context, Pending[T], http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := extract(r)
		if err != nil || id == "" {
			http.Error(w, "invalid pending id", http.StatusBadRequest)
			return
		}
		p, err := manager.Complete(r.Context(), id)
		if err != nil {
			if IsNotFound(err) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "failed to load pending", http.StatusInternalServerError)
			return
		}
		if err := next(r.Context(), p, w, r); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
