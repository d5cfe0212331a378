package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// discovery is the subset of the OpenID provider metadata the client uses.
type discovery struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
}

func (c *Client) fetchDiscovery(ctx context.Context, URL string) (*discovery, error) {
	data, err := c.get(ctx, URL, "")
	if err != nil {
		return nil, err
	}
	ret := &discovery{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// loadAPIDiscovery loads a discovery document with the API key, as the
// general-purpose API client does on init.
func (c *Client) loadAPIDiscovery(ctx context.Context, URL, apiKey string) error {
	if apiKey != "" {
		u, err := url.Parse(URL)
		if err != nil {
			return err
		}
		query := u.Query()
		query.Set("key", apiKey)
		u.RawQuery = query.Encode()
		URL = u.String()
	}
	data, err := c.get(ctx, URL, "")
	if err != nil {
		return err
	}
	var doc map[string]any
	return json.Unmarshal(data, &doc)
}

// get issues a GET, optionally authenticated with a bearer token.
func (c *Client) get(ctx context.Context, URL, bearer string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &statusError{URL: URL, StatusCode: response.StatusCode, Body: data}
	}
	return data, nil
}
