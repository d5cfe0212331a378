package schema

import "github.com/viant/jsonrpc"

const (
	// CapabilityFailed is returned when a handler failed or panicked.
	CapabilityFailed = -32000
	// ReauthenticationRequired tells the caller to restart its session from a clean cache.
	ReauthenticationRequired = -32001
)

// ErrorData is attached to capability errors.
type ErrorData struct {
	Category string `json:"category,omitempty"`
	TextCode string `json:"textCode,omitempty"`
}

// NewCapabilityFailed creates a capability failure error.
func NewCapabilityFailed(message string, data *ErrorData) *jsonrpc.Error {
	return jsonrpc.NewError(CapabilityFailed, message, data)
}

// NewReauthenticationRequired creates a reauthentication error.
func NewReauthenticationRequired(message string, data *ErrorData) *jsonrpc.Error {
	return jsonrpc.NewError(ReauthenticationRequired, message, data)
}

// NewUnknownCapability creates a method not found error for an unregistered name.
func NewUnknownCapability(name string) *jsonrpc.Error {
	return jsonrpc.NewMethodNotFound("capability: "+name+" not found", nil)
}
