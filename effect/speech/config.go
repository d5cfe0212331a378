package speech

const (
	DefaultEndpointURL  = "https://%s.tts.speech.microsoft.com/cognitiveservices/v1"
	DefaultVoice        = "nl-NL-MaartenNeural"
	DefaultOutputFormat = "audio-24khz-96kbitrate-mono-mp3"
	DefaultUserAgent    = "hostbridge"
)

// Config describes the speech synthesis endpoint.
type Config struct {
	// EndpointURL is a format string receiving the region.
	EndpointURL  string `json:"endpointURL,omitempty" yaml:"endpointURL,omitempty"`
	Voice        string `json:"voice,omitempty" yaml:"voice,omitempty"`
	OutputFormat string `json:"outputFormat,omitempty" yaml:"outputFormat,omitempty"`
}

// Init sets defaults
func (c *Config) Init() {
	if c.EndpointURL == "" {
		c.EndpointURL = DefaultEndpointURL
	}
	if c.Voice == "" {
		c.Voice = DefaultVoice
	}
	if c.OutputFormat == "" {
		c.OutputFormat = DefaultOutputFormat
	}
}

// language returns the locale prefix of the voice name, e.g. nl-NL.
func (c *Config) language() string {
	count := 0
	for i, r := range c.Voice {
		if r == '-' {
			count++
			if count == 2 {
				return c.Voice[:i]
			}
		}
	}
	return "en-US"
}
