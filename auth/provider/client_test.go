package provider

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hostbridge/auth/flow"
	"github.com/viant/hostbridge/auth/mock"
)

func newTestClient(t *testing.T, server *mock.HTTPTestAuthorizationServer, options ...Option) *Client {
	config := &Config{
		ClientID:         server.ClientID,
		ClientSecret:     server.ClientSecret,
		DiscoveryURL:     server.DiscoveryURL(),
		APIKey:           server.APIKey,
		APIDiscoveryURLs: []string{server.APIDiscoveryURL()},
		PromptTimeout:    5 * time.Second,
	}
	options = append([]Option{WithPresenter(flow.NewHTTPFollower(nil))}, options...)
	client := New(config, options...)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newMockServer(t *testing.T) *mock.HTTPTestAuthorizationServer {
	server, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return server
}

func TestClient_NotReady(t *testing.T) {
	client := newTestClient(t, newMockServer(t))
	assert.Equal(t, Uninitialized, client.State())
	_, err := client.RequestToken(context.Background(), "", true)
	assert.True(t, IsNotReady(err))
	assert.Contains(t, Message(err), "Token client was not initialized.")
}

func TestClient_InitializeFailure(t *testing.T) {
	t.Run("api key rejected", func(t *testing.T) {
		server := newMockServer(t)
		client := newTestClient(t, server)
		client.config.APIKey = "wrong"

		err := client.Initialize(context.Background())
		require.Error(t, err)
		assert.Equal(t, "API key not valid. Please pass a valid API key.", Message(err))
		assert.Equal(t, Failed, client.State())
		assert.Equal(t, err, client.Initialize(context.Background()))

		_, err = client.RequestToken(context.Background(), "", true)
		assert.True(t, IsNotReady(err))
		assert.Equal(t, 0, server.Requests())
	})

	t.Run("unrecognized failure", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "oops", http.StatusInternalServerError)
		}))
		defer broken.Close()
		client := New(&Config{DiscoveryURL: broken.URL}, WithPresenter(flow.NewLog(nil)))
		err := client.Initialize(context.Background())
		require.Error(t, err)
		assert.Equal(t, DefaultErrorMessage, Message(err))
	})
}

func TestClient_RequestToken(t *testing.T) {
	server := newMockServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()
	require.NoError(t, client.Initialize(ctx))
	assert.True(t, client.Ready())
	assert.Contains(t, client.RedirectURL(), "/callback")

	_, err := client.RequestToken(ctx, mock.DefaultAccount, false)
	assert.True(t, IsReauthenticationRequired(err), "silent request without prior consent")

	grant, err := client.RequestToken(ctx, "", true)
	require.NoError(t, err)
	assert.NotEmpty(t, grant.AccessToken)
	assert.Equal(t, mock.DefaultAccount, grant.Account)
	assert.True(t, grant.AccountResolved)
	assert.Equal(t, 1, server.Stats().UserInfo)

	silent, err := client.RequestToken(ctx, mock.DefaultAccount, false)
	require.NoError(t, err)
	assert.NotEqual(t, grant.AccessToken, silent.AccessToken)
	assert.False(t, silent.AccountResolved)
	assert.Equal(t, 1, server.Stats().UserInfo, "hinted grant must not look up the account")

	server.FailNext("temporarily_unavailable", "try later")
	_, err = client.RequestToken(ctx, mock.DefaultAccount, false)
	require.Error(t, err)
	assert.False(t, IsReauthenticationRequired(err))
	assert.Equal(t, "try later", Message(err))
}

func TestClient_RedirectEndpoint(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	freePort := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
	require.NoError(t, ln.Close())

	var testCases = []struct {
		description  string
		redirectURL  string
		callbackPath string
		expect       *regexp.Regexp
		grant        bool
		hasErr       bool
	}{
		{
			description: "listener url",
			expect:      regexp.MustCompile(`^http://127\.0\.0\.1:\d+/callback$`),
			grant:       true,
		},
		{
			description:  "custom callback path",
			callbackPath: "/auth/done",
			expect:       regexp.MustCompile(`^http://127\.0\.0\.1:\d+/auth/done$`),
			grant:        true,
		},
		{
			description: "loopback redirect with port",
			redirectURL: "http://127.0.0.1:" + freePort + "/oauth2/code",
			expect:      regexp.MustCompile(`^http://127\.0\.0\.1:` + freePort + `/oauth2/code$`),
			grant:       true,
		},
		{
			description: "installed app redirect without port",
			redirectURL: "http://localhost",
			expect:      regexp.MustCompile(`^http://localhost:\d+$`),
			grant:       true,
		},
		{
			description: "external redirect kept as is",
			redirectURL: "https://auth.example.com/relay",
			expect:      regexp.MustCompile(`^https://auth\.example\.com/relay$`),
		},
		{
			description: "invalid redirect",
			redirectURL: "not a url",
			hasErr:      true,
		},
	}
	for _, testCase := range testCases {
		server := newMockServer(t)
		client := newTestClient(t, server)
		client.config.RedirectURL = testCase.redirectURL
		if testCase.callbackPath != "" {
			client.config.CallbackPath = testCase.callbackPath
		}
		ctx := context.Background()
		err := client.Initialize(ctx)
		if testCase.hasErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Regexp(t, testCase.expect, client.RedirectURL(), testCase.description)
		if !testCase.grant {
			continue
		}
		grant, err := client.RequestToken(ctx, "", true)
		require.NoError(t, err, testCase.description)
		assert.NotEmpty(t, grant.AccessToken, testCase.description)
	}
}

func TestClient_PromptModes(t *testing.T) {
	server := newMockServer(t)
	var urls []string
	var mux sync.Mutex
	follower := flow.NewHTTPFollower(nil)
	client := newTestClient(t, server, WithPresenter(flow.PresenterFunc(func(ctx context.Context, authURL string) error {
		mux.Lock()
		urls = append(urls, authURL)
		mux.Unlock()
		return follower.Present(ctx, authURL)
	})))
	ctx := context.Background()
	require.NoError(t, client.Initialize(ctx))

	_, err := client.RequestToken(ctx, "", true)
	require.NoError(t, err)
	_, err = client.RequestToken(ctx, mock.DefaultAccount, false)
	require.NoError(t, err)

	require.Len(t, urls, 2)
	assert.Contains(t, urls[0], "prompt=consent")
	assert.NotContains(t, urls[0], "login_hint")
	assert.Contains(t, urls[1], "prompt=none")
	assert.Contains(t, urls[1], "login_hint=user%40example.com")
	assert.Contains(t, urls[1], "code_challenge_method=S256")
}

func TestClient_SingleInteractivePrompt(t *testing.T) {
	server := newMockServer(t)
	release := make(chan struct{})
	presented := make(chan struct{})
	follower := flow.NewHTTPFollower(nil)
	var once sync.Once
	client := newTestClient(t, server, WithPresenter(flow.PresenterFunc(func(ctx context.Context, authURL string) error {
		once.Do(func() {
			close(presented)
			<-release
		})
		return follower.Present(ctx, authURL)
	})))
	ctx := context.Background()
	require.NoError(t, client.Initialize(ctx))

	type result struct {
		grant *Grant
		err   error
	}
	first := make(chan result, 1)
	go func() {
		grant, err := client.RequestToken(ctx, "", true)
		first <- result{grant, err}
	}()
	<-presented

	_, err := client.RequestToken(ctx, "", true)
	assert.True(t, IsPromptInFlight(err))

	close(release)
	got := <-first
	require.NoError(t, got.err)
	assert.NotEmpty(t, got.grant.AccessToken)
}

func TestClient_ConcurrentSilentRequests(t *testing.T) {
	server := newMockServer(t)
	server.Consent(mock.DefaultAccount)
	client := newTestClient(t, server)
	ctx := context.Background()
	require.NoError(t, client.Initialize(ctx))

	const count = 5
	tokens := make([]string, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			grant, err := client.RequestToken(ctx, mock.DefaultAccount, false)
			if assert.NoError(t, err) {
				tokens[i] = grant.AccessToken
			}
		}(i)
	}
	wg.Wait()
	seen := map[string]bool{}
	for _, token := range tokens {
		assert.NotEmpty(t, token)
		assert.False(t, seen[token], "each request receives its own token")
		seen[token] = true
	}
}

func TestClient_AbandonedPrompt(t *testing.T) {
	server := newMockServer(t)
	authURLs := make(chan string, 1)
	client := newTestClient(t, server, WithPresenter(flow.PresenterFunc(func(ctx context.Context, authURL string) error {
		authURLs <- authURL
		return nil
	})))
	require.NoError(t, client.Initialize(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := client.RequestToken(ctx, "", true)
	require.Error(t, err)

	follower := flow.NewHTTPFollower(nil)
	assert.Error(t, follower.Present(context.Background(), <-authURLs), "late redirect is rejected")
}

func TestMessage(t *testing.T) {
	testCases := []struct {
		description string
		body        string
		expect      string
	}{
		{description: "message", body: `{"message":"m"}`, expect: "m"},
		{description: "nested", body: `{"error":{"message":"nested"}}`, expect: "nested"},
		{description: "oauth", body: `{"error":"invalid_client","error_description":"bad client"}`, expect: "bad client"},
		{description: "code only", body: `{"error":"invalid_client"}`, expect: "invalid_client"},
		{description: "plain text", body: `oops`, expect: DefaultErrorMessage},
		{description: "empty", body: ``, expect: DefaultErrorMessage},
	}
	for _, testCase := range testCases {
		err := &statusError{StatusCode: 500, Body: []byte(testCase.body)}
		assert.Equal(t, testCase.expect, Message(err), testCase.description)
	}
	assert.Equal(t, DefaultErrorMessage, Message(nil))
}
