// Package speech turns text into spoken audio through the Azure Speech REST API.
package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/hostbridge/schema"
)

const TextCodeFailed = "SPEECH_FAILED"

const dataURLPrefix = "data:audio/mpeg;base64,"

// Synthesizer synthesizes speech.
type Synthesizer struct {
	config     Config
	httpClient *http.Client
	logger     glog.Logger
}

// Synthesize returns the synthesized audio as a data URL.
func (s *Synthesizer) Synthesize(ctx context.Context, request *schema.SynthesizeSpeechRequest) (string, error) {
	if request.CredentialKey == "" || request.Region == "" {
		return "", goerrors.New("speech synthesis requires credentialKey and region", goerrors.CategoryValidation).
			WithTextCode(TextCodeFailed)
	}
	endpoint := fmt.Sprintf(s.config.EndpointURL, request.Region)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(s.ssml(request.Text)))
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create speech request").WithTextCode(TextCodeFailed)
	}
	httpRequest.Header.Set("Ocp-Apim-Subscription-Key", request.CredentialKey)
	httpRequest.Header.Set("Content-Type", "application/ssml+xml")
	httpRequest.Header.Set("X-Microsoft-OutputFormat", s.config.OutputFormat)
	httpRequest.Header.Set("User-Agent", DefaultUserAgent)

	response, err := s.httpClient.Do(httpRequest)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryExternal, "speech synthesis failed").WithTextCode(TextCodeFailed)
	}
	defer response.Body.Close()
	audio, err := io.ReadAll(response.Body)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryExternal, "failed to read synthesized audio").WithTextCode(TextCodeFailed)
	}
	if response.StatusCode != http.StatusOK {
		s.logger.Warn("speech synthesis rejected", "status", response.StatusCode, "region", request.Region)
		return "", goerrors.New(fmt.Sprintf("speech synthesis failed: %v", response.Status), goerrors.CategoryExternal).
			WithTextCode(TextCodeFailed).
			WithMetadata(map[string]any{"status": response.StatusCode})
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(audio), nil
}

func (s *Synthesizer) ssml(text string) []byte {
	builder := &strings.Builder{}
	lang := s.config.language()
	fmt.Fprintf(builder, "<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>", lang, lang, s.config.Voice)
	_ = xml.EscapeText(builder, []byte(text))
	builder.WriteString("</voice></speak>")
	return []byte(builder.String())
}

// Option customises a Synthesizer.
type Option func(s *Synthesizer)

// WithHTTPClient sets the http client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Synthesizer) {
		s.httpClient = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger glog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = glog.Ensure(logger)
	}
}

// New creates a synthesizer.
func New(config Config, options ...Option) *Synthesizer {
	config.Init()
	ret := &Synthesizer{config: config, httpClient: http.DefaultClient, logger: glog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
