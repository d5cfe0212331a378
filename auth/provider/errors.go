package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/oauth2"
)

// DefaultErrorMessage is used when a failure carries no recognizable message.
const DefaultErrorMessage = "Unknown error."

const (
	TextCodeClientNotReady           = "CLIENT_NOT_READY"
	TextCodeInitializationFailed     = "INITIALIZATION_FAILED"
	TextCodeReauthenticationRequired = "REAUTHENTICATION_REQUIRED"
	TextCodePromptInFlight           = "PROMPT_IN_FLIGHT"
	TextCodeProviderError            = "PROVIDER_ERROR"
)

// ErrorInteractionRequired is the provider error code for stale consent.
const ErrorInteractionRequired = "interaction_required"

// reauthenticationCodes are the OpenID Connect prompt=none errors meaning
// the previously granted session can no longer be renewed silently.
var reauthenticationCodes = map[string]bool{
	ErrorInteractionRequired:     true,
	"login_required":             true,
	"consent_required":           true,
	"account_selection_required": true,
}

// IsNotReady reports whether err signals a client that has not completed initialization.
func IsNotReady(err error) bool {
	return hasTextCode(err, TextCodeClientNotReady)
}

// IsReauthenticationRequired reports whether err means cached consent is stale.
func IsReauthenticationRequired(err error) bool {
	return hasTextCode(err, TextCodeReauthenticationRequired)
}

// IsPromptInFlight reports whether err rejected a second interactive prompt.
func IsPromptInFlight(err error) bool {
	return hasTextCode(err, TextCodePromptInFlight)
}

func hasTextCode(err error, code string) bool {
	var e *goerrors.Error
	return goerrors.As(err, &e) && e.TextCode == code
}

func notReady(cause error) error {
	message := "Token client was not initialized."
	ret := goerrors.New(message, goerrors.CategoryOperation).WithTextCode(TextCodeClientNotReady)
	if cause != nil {
		ret.Source = cause
		ret.Message = message + " " + Message(cause)
	}
	return ret
}

func initializationFailed(cause error) error {
	ret := goerrors.New(Message(cause), goerrors.CategoryExternal).WithTextCode(TextCodeInitializationFailed)
	ret.Source = cause
	return ret
}

func promptInFlight() error {
	return goerrors.New("an interactive authorization prompt is already in flight", goerrors.CategoryConflict).
		WithTextCode(TextCodePromptInFlight)
}

// providerError classifies an OAuth2 error code returned by the authorization or token endpoint.
func providerError(code, description string) error {
	message := description
	if message == "" {
		message = code
	}
	if message == "" {
		message = DefaultErrorMessage
	}
	if reauthenticationCodes[code] {
		return goerrors.New(message, goerrors.CategoryAuth).
			WithTextCode(TextCodeReauthenticationRequired).
			WithMetadata(map[string]any{"error": code})
	}
	return goerrors.New(message, goerrors.CategoryExternal).
		WithTextCode(TextCodeProviderError).
		WithMetadata(map[string]any{"error": code})
}

// exchangeError classifies a failed code exchange.
func exchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "" {
		return providerError(retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
	}
	ret := goerrors.Wrap(err, goerrors.CategoryExternal, "failed to exchange authorization code")
	return ret.WithTextCode(TextCodeProviderError)
}

// statusError is a non-2xx response from a provider endpoint.
type statusError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Message extracts a human-readable message from err, falling back to
// DefaultErrorMessage when err has no recognizable shape.
func Message(err error) string {
	if err == nil {
		return DefaultErrorMessage
	}
	var domainErr *goerrors.Error
	if goerrors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorDescription != "" {
			return retrieveErr.ErrorDescription
		}
		if retrieveErr.ErrorCode != "" {
			return retrieveErr.ErrorCode
		}
		return bodyMessage(retrieveErr.Body)
	}
	var status *statusError
	if errors.As(err, &status) {
		return bodyMessage(status.Body)
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return err.Error()
	}
	return DefaultErrorMessage
}

// bodyMessage reads {"message"}, {"error":{"message"}}, {"error_description"} or {"error":"..."}.
func bodyMessage(body []byte) string {
	var payload struct {
		Message          string          `json:"message"`
		ErrorDescription string          `json:"error_description"`
		Error            json.RawMessage `json:"error"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return DefaultErrorMessage
	}
	if payload.Message != "" {
		return payload.Message
	}
	if len(payload.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	if payload.ErrorDescription != "" {
		return payload.ErrorDescription
	}
	var code string
	if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &code) == nil && code != "" {
		return code
	}
	return DefaultErrorMessage
}
