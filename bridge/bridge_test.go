package bridge

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hostbridge"
)

func TestOptions_Merge(t *testing.T) {
	t.Setenv("HOSTBRIDGE_TRANSPORT", "http")
	t.Setenv("HOSTBRIDGE_STORAGE_URL", "file:///tmp/from-env")
	t.Setenv("HOSTBRIDGE_CLIENT_ID", "env-client")
	t.Setenv("HOSTBRIDGE_ALLOW_ORIGINS", "app://ui,http://localhost:3000")
	t.Setenv("HOSTBRIDGE_PROMPT_TIMEOUT", "30s")

	environment, err := LoadEnvironment()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, environment.PromptTimeout)
	assert.Equal(t, "127.0.0.1:5000", environment.Addr)

	options := &Options{}
	_, err = flags.ParseArgs(options, []string{"-s", "mem://localhost/state", "--log-call-errors"})
	require.NoError(t, err)
	options.Merge(environment)

	assert.Equal(t, "http", options.Transport)
	assert.Equal(t, "mem://localhost/state", options.StorageURL, "flag wins over env")
	assert.Equal(t, "env-client", options.ClientID)
	assert.Equal(t, []string{"app://ui", "http://localhost:3000"}, options.AllowOrigins)
	assert.True(t, options.LogCallErrors)
	assert.Equal(t, "info", options.LogLevel)
}

func TestConfig(t *testing.T) {
	options := &Options{
		Transport:     hostbridge.TransportHTTP,
		Addr:          "127.0.0.1:0",
		ClientID:      "id",
		ClientSecret:  "secret",
		APIKey:        "key",
		ExportURL:     "mem://localhost/export",
		MediaURLs:     []string{"file:///srv/decks"},
		AllowOrigins:  []string{"app://ui"},
		LogCallErrors: true,
	}
	config, err := Config(context.Background(), options, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "id", config.Provider.ClientID)
	assert.Equal(t, "key", config.Provider.APIKey)
	assert.Equal(t, time.Minute, config.Provider.PromptTimeout)
	assert.Equal(t, "mem://localhost/export", config.Export.OutputURL)
	assert.Equal(t, []string{"file:///srv/decks"}, config.Export.MediaBaseURLs)
	assert.True(t, config.Bridge.LogCallErrors)
	require.NotNil(t, config.Transport.Cors)
	assert.Equal(t, []string{"app://ui"}, config.Transport.Cors.AllowOrigins)

	_, err = Config(context.Background(), &Options{OAuth2ConfigURL: "file:///nonexistent/oauth.json"}, 0)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := NewLogger(buffer, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	output := buffer.String()
	assert.False(t, strings.Contains(output, "hidden"))
	assert.True(t, strings.Contains(output, "shown"))
	assert.True(t, strings.Contains(output, "key=value"))
}
