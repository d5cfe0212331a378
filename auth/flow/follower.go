package flow

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPFollower requests the authorization URL and follows redirects until the
// redirect endpoint answers. It suits providers that grant without UI, such as
// prompt=none against a live session or a test provider.
type HTTPFollower struct {
	Client *http.Client
}

func (f *HTTPFollower) Present(ctx context.Context, authURL string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, authURL, nil)
	if err != nil {
		return err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("authorization request failed with status %d", response.StatusCode)
	}
	return nil
}

func NewHTTPFollower(client *http.Client) *HTTPFollower {
	return &HTTPFollower{Client: client}
}
