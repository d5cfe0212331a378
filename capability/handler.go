package capability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/hostbridge/internal/collection"
	"github.com/viant/hostbridge/internal/conv"
	"github.com/viant/hostbridge/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// Handler serves capability calls arriving over a JSON-RPC transport. The
// request method is the capability name and params is the payload.
type Handler struct {
	transport.Notifier
	*Logger
	registry *Registry
	active   *collection.SyncMap[int, context.CancelFunc]
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		h.registry.logInteropError(h.registry.logger, request.Method, response.Error)
		return
	}
	switch request.Method {
	case mcpschema.MethodLoggingSetLevel:
		result, err := h.SetLevel(parent, request)
		h.setResponse(response, result, err)
		return
	case schema.MethodCapabilitiesList:
		h.setResponse(response, &schema.ListCapabilitiesResult{Capabilities: h.registry.Capabilities()}, nil)
		return
	}
	if !h.registry.Lookup(request.Method) {
		response.Error = schema.NewUnknownCapability(request.Method)
		h.registry.logInteropError(h.registry.logger, request.Method, response.Error)
		return
	}

	ctx, cancel := context.WithCancel(parent)
	id := conv.AsInt(request.Id)
	if id != 0 {
		h.active.Put(id, cancel)
		defer h.active.Delete(id)
	}
	defer cancel()

	result, err := h.registry.invoke(ctx, request.Method, request.Params)
	if err != nil {
		h.registry.logCallError(h.registry.logger, request.Method, err)
		h.setResponse(response, nil, AsRPCError(err))
		return
	}
	h.setResponse(response, result, nil)
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
	}
}

// OnNotification handles fire-and-forget capability calls and cancellations.
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	if notification.Method == mcpschema.MethodNotificationCancel {
		if err := h.Cancel(ctx, notification); err != nil {
			h.registry.logInteropError(h.registry.logger, notification.Method, err)
		}
		return
	}
	if !h.registry.Lookup(notification.Method) {
		h.registry.logInteropError(h.registry.logger, notification.Method,
			fmt.Errorf("capability: %v not found", notification.Method))
		return
	}
	if _, err := h.registry.invoke(ctx, notification.Method, notification.Params); err != nil {
		h.registry.logCallError(h.registry.logger, notification.Method, err)
	}
}

// Cancel aborts an in-flight call identified by the notification request id.
func (h *Handler) Cancel(ctx context.Context, notification *jsonrpc.Notification) *jsonrpc.Error {
	var params mcpschema.CancelledNotificationParams
	if err := json.Unmarshal(notification.Params, &params); err != nil {
		return jsonrpc.NewParsingError(fmt.Sprintf("failed to parse notification: %v", err), notification.Params)
	}
	if params.RequestId == nil || *params.RequestId == 0 {
		return jsonrpc.NewInvalidParamsError("invalid requestId", notification.Params)
	}
	if cancel, ok := h.active.Get(int(*params.RequestId)); ok {
		cancel()
	}
	return nil
}

// NewHandler creates a transport handler bound to the registry.
func (r *Registry) NewHandler(ctx context.Context, aTransport transport.Transport) transport.Handler {
	return &Handler{
		Notifier: aTransport,
		Logger:   NewLogger("hostbridge", aTransport),
		registry: r,
		active:   collection.NewSyncMap[int, context.CancelFunc](),
	}
}
