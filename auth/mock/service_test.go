package mock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcp-protocol/oauth2/meta"
)

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func authorize(t *testing.T, server *HTTPTestAuthorizationServer, values url.Values) url.Values {
	client := &http.Client{CheckRedirect: noRedirect}
	response, err := client.Get(server.Issuer + "/authorize?" + values.Encode())
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusFound, response.StatusCode)
	location, err := url.Parse(response.Header.Get("Location"))
	require.NoError(t, err)
	return location.Query()
}

func TestAuthorizationService_Authorize(t *testing.T) {
	server, err := NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer server.Close()

	base := url.Values{"client_id": {server.ClientID}, "redirect_uri": {"http://localhost/callback"}, "state": {"s"}}
	with := func(kv ...string) url.Values {
		ret := url.Values{}
		for k, v := range base {
			ret[k] = v
		}
		for i := 0; i < len(kv); i += 2 {
			ret.Set(kv[i], kv[i+1])
		}
		return ret
	}

	testCases := []struct {
		description string
		setup       func()
		values      url.Values
		expectError string
	}{
		{description: "silent without consent", values: with("prompt", "none", "login_hint", DefaultAccount), expectError: "interaction_required"},
		{description: "consent", values: with("prompt", "consent")},
		{description: "silent after consent", values: with("prompt", "none", "login_hint", DefaultAccount)},
		{description: "silent without hint", values: with("prompt", "none"), expectError: "interaction_required"},
		{description: "injected failure", setup: func() { server.FailNext("server_error", "boom") }, values: with("prompt", "consent"), expectError: "server_error"},
		{description: "revoked", setup: func() { server.Revoke(DefaultAccount) }, values: with("prompt", "none", "login_hint", DefaultAccount), expectError: "interaction_required"},
	}
	for _, testCase := range testCases {
		if testCase.setup != nil {
			testCase.setup()
		}
		query := authorize(t, server, testCase.values)
		assert.Equal(t, "s", query.Get("state"), testCase.description)
		assert.Equal(t, testCase.expectError, query.Get("error"), testCase.description)
		if testCase.expectError == "" {
			assert.NotEmpty(t, query.Get("code"), testCase.description)
		}
	}
	assert.Equal(t, 4, server.Stats().Authorize["none"])
}

func TestAuthorizationService_TokenAndUserInfo(t *testing.T) {
	server, err := NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer server.Close()

	query := authorize(t, server, url.Values{"client_id": {server.ClientID}, "redirect_uri": {"http://localhost/cb"}, "prompt": {"consent"}})
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {query.Get("code")},
		"client_id":     {server.ClientID},
		"client_secret": {server.ClientSecret},
	}
	response, err := http.Post(server.Issuer+"/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)
	var token struct {
		AccessToken string `json:"access_token"`
		IDToken     string `json:"id_token"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&token))

	keys, err := meta.FetchJSONWebKeySet(context.Background(), server.Issuer+"/jwks", http.DefaultClient)
	require.NoError(t, err)
	parsed, err := jwt.Parse(token.IDToken, func(token *jwt.Token) (interface{}, error) {
		return keys[token.Header["kid"].(string)], nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	request, _ := http.NewRequest(http.MethodGet, server.Issuer+"/userinfo", nil)
	request.Header.Set("Authorization", "Bearer "+token.AccessToken)
	infoResponse, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer infoResponse.Body.Close()
	var info map[string]interface{}
	require.NoError(t, json.NewDecoder(infoResponse.Body).Decode(&info))
	assert.Equal(t, DefaultAccount, info["email"])

	replay, err := http.Post(server.Issuer+"/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer replay.Body.Close()
	assert.Equal(t, http.StatusBadRequest, replay.StatusCode)
}
