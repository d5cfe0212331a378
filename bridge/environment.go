package bridge

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment holds HOSTBRIDGE_* variables.
type Environment struct {
	Transport        string        `env:"HOSTBRIDGE_TRANSPORT" envDefault:"stdio"`
	Addr             string        `env:"HOSTBRIDGE_ADDR" envDefault:"127.0.0.1:5000"`
	StorageURL       string        `env:"HOSTBRIDGE_STORAGE_URL"`
	OAuth2ConfigURL  string        `env:"HOSTBRIDGE_OAUTH2_CONFIG_URL"`
	EncryptionKey    string        `env:"HOSTBRIDGE_ENCRYPTION_KEY"`
	ClientID         string        `env:"HOSTBRIDGE_CLIENT_ID"`
	ClientSecret     string        `env:"HOSTBRIDGE_CLIENT_SECRET"`
	APIKey           string        `env:"HOSTBRIDGE_API_KEY"`
	ExportURL        string        `env:"HOSTBRIDGE_EXPORT_URL"`
	MediaURLs        []string      `env:"HOSTBRIDGE_MEDIA_URLS" envSeparator:","`
	AllowOrigins     []string      `env:"HOSTBRIDGE_ALLOW_ORIGINS" envSeparator:","`
	LogLevel         string        `env:"HOSTBRIDGE_LOG_LEVEL" envDefault:"info"`
	LogCallErrors    bool          `env:"HOSTBRIDGE_LOG_CALL_ERRORS"`
	LogInteropErrors bool          `env:"HOSTBRIDGE_LOG_INTEROP_ERRORS"`
	PromptTimeout    time.Duration `env:"HOSTBRIDGE_PROMPT_TIMEOUT" envDefault:"5m"`
}

// LoadEnvironment parses HOSTBRIDGE_* variables.
func LoadEnvironment() (*Environment, error) {
	ret := &Environment{}
	if err := env.Parse(ret); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return ret, nil
}

// Merge fills every unset flag from the environment.
func (o *Options) Merge(environment *Environment) {
	if environment == nil {
		return
	}
	setString := func(target *string, value string) {
		if *target == "" {
			*target = value
		}
	}
	setString(&o.Transport, environment.Transport)
	setString(&o.Addr, environment.Addr)
	setString(&o.StorageURL, environment.StorageURL)
	setString(&o.OAuth2ConfigURL, environment.OAuth2ConfigURL)
	setString(&o.EncryptionKey, environment.EncryptionKey)
	setString(&o.ClientID, environment.ClientID)
	setString(&o.ClientSecret, environment.ClientSecret)
	setString(&o.APIKey, environment.APIKey)
	setString(&o.ExportURL, environment.ExportURL)
	setString(&o.LogLevel, environment.LogLevel)
	if len(o.MediaURLs) == 0 {
		o.MediaURLs = environment.MediaURLs
	}
	if len(o.AllowOrigins) == 0 {
		o.AllowOrigins = environment.AllowOrigins
	}
	o.LogCallErrors = o.LogCallErrors || environment.LogCallErrors
	o.LogInteropErrors = o.LogInteropErrors || environment.LogInteropErrors
}
