package capability

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/viant/hostbridge/schema"
	"github.com/viant/jsonrpc"
)

// AsRPCError converts a handler error into a JSON-RPC error. Domain errors keep
// their human-readable message and expose category and text code as data.
func AsRPCError(err error) *jsonrpc.Error {
	if err == nil {
		return nil
	}
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	var domainErr *goerrors.Error
	if !goerrors.As(err, &domainErr) {
		return schema.NewCapabilityFailed(err.Error(), nil)
	}
	message := domainErr.Message
	if domainErr.Source != nil && domainErr.Category == goerrors.CategoryBadInput {
		message += ": " + domainErr.Source.Error()
	}
	data := &schema.ErrorData{Category: domainErr.Category.String(), TextCode: domainErr.TextCode}
	switch domainErr.Category {
	case goerrors.CategoryAuth:
		return schema.NewReauthenticationRequired(message, data)
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return jsonrpc.NewError(jsonrpc.InvalidParams, message, data)
	case goerrors.CategoryNotFound:
		if domainErr.TextCode == TextCodeNotFound {
			return jsonrpc.NewError(jsonrpc.MethodNotFound, message, data)
		}
	}
	return schema.NewCapabilityFailed(message, data)
}
