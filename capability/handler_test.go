package capability

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hostbridge/schema"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

type mockTransport struct {
	mux           sync.Mutex
	notifications []*jsonrpc.Notification
}

func (m *mockTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	return &jsonrpc.Response{}, nil
}

func (m *mockTransport) sent() []*jsonrpc.Notification {
	m.mux.Lock()
	defer m.mux.Unlock()
	return append([]*jsonrpc.Notification{}, m.notifications...)
}

func serve(handler *Handler, method string, params string) *jsonrpc.Response {
	request := &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 1, Method: method}
	if params != "" {
		request.Params = []byte(params)
	}
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	return response
}

func TestHandler_Serve(t *testing.T) {
	registry := newTestRegistry()
	handler := registry.NewHandler(context.Background(), &mockTransport{}).(*Handler)

	var testCases = []struct {
		description string
		method      string
		params      string
		expect      string
		expectCode  int
	}{
		{description: "typed call", method: "echo", params: `{"text":"hello"}`, expect: `{"text":"hello"}`},
		{description: "unknown name", method: "nope", expectCode: -32601},
		{description: "invalid payload", method: "echo", params: `[1,2]`, expectCode: -32602},
		{description: "panic", method: "boom", expectCode: schema.CapabilityFailed},
		{description: "handler error", method: "fail", expectCode: schema.CapabilityFailed},
	}
	for _, testCase := range testCases {
		response := serve(handler, testCase.method, testCase.params)
		if testCase.expectCode != 0 {
			require.NotNil(t, response.Error, testCase.description)
			assert.EqualValues(t, testCase.expectCode, response.Error.Code, testCase.description)
			continue
		}
		require.Nil(t, response.Error, testCase.description)
		assert.JSONEq(t, testCase.expect, string(response.Result), testCase.description)
	}

	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), &jsonrpc.Request{Jsonrpc: "1.0", Method: "echo"}, response)
	require.NotNil(t, response.Error)
}

func TestHandler_CapabilitiesList(t *testing.T) {
	registry := newTestRegistry()
	handler := registry.NewHandler(context.Background(), &mockTransport{}).(*Handler)
	response := serve(handler, schema.MethodCapabilitiesList, "")
	require.Nil(t, response.Error)
	result := &schema.ListCapabilitiesResult{}
	require.NoError(t, json.Unmarshal(response.Result, result))
	var names []string
	for _, capability := range result.Capabilities {
		names = append(names, capability.Name)
	}
	assert.Equal(t, []string{"boom", "echo", "fail"}, names)
	assert.NotNil(t, result.Capabilities[1].InputSchema)
}

func TestHandler_Logging(t *testing.T) {
	registry := newTestRegistry()
	aTransport := &mockTransport{}
	handler := registry.NewHandler(context.Background(), aTransport).(*Handler)

	handler.Logger.Info("dropped")
	assert.Empty(t, aTransport.sent())

	response := serve(handler, mcpschema.MethodLoggingSetLevel, `{"level":"warning"}`)
	require.Nil(t, response.Error)

	handler.Logger.Info("still dropped")
	handler.Logger.Error("token refresh failed", "account", "user@example.com")
	notifications := aTransport.sent()
	require.Len(t, notifications, 1)
	assert.Equal(t, mcpschema.MethodNotificationMessage, notifications[0].Method)

	params := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(notifications[0].Params, &params))
	assert.Equal(t, "error", params["level"])
	assert.Equal(t, map[string]interface{}{"message": "token refresh failed", "account": "user@example.com"}, params["data"])
}

func TestLogger_Levels(t *testing.T) {
	aTransport := &mockTransport{}
	logger := NewLogger("host", aTransport)
	logger.SetLevel(mcpschema.LoggingLevelDebug)
	var testCases = []struct {
		description string
		log         func(msg string, args ...any)
		expect      string
	}{
		{description: "trace", log: logger.Trace, expect: "debug"},
		{description: "debug", log: logger.Debug, expect: "debug"},
		{description: "info", log: logger.Info, expect: "info"},
		{description: "warn", log: logger.Warn, expect: "warning"},
		{description: "error", log: logger.Error, expect: "error"},
		{description: "fatal", log: logger.Fatal, expect: "critical"},
	}
	for i, testCase := range testCases {
		testCase.log(testCase.description)
		notifications := aTransport.sent()
		require.Len(t, notifications, i+1, testCase.description)
		params := mcpschema.LoggingMessageNotificationParams{}
		require.NoError(t, json.Unmarshal(notifications[i].Params, &params), testCase.description)
		assert.EqualValues(t, testCase.expect, params.Level, testCase.description)
	}
}

func TestHandler_OnNotification(t *testing.T) {
	registry := NewRegistry()
	called := make(chan string, 1)
	Handle(registry, "echo", func(ctx context.Context, input *echoInput) (*echoOutput, error) {
		called <- input.Text
		return &echoOutput{}, nil
	})
	handler := registry.NewHandler(context.Background(), &mockTransport{})
	handler.OnNotification(context.Background(), &jsonrpc.Notification{Method: "echo", Params: []byte(`{"text":"fire"}`)})
	select {
	case text := <-called:
		assert.Equal(t, "fire", text)
	case <-time.After(time.Second):
		t.Fatal("notification was not dispatched")
	}
	handler.OnNotification(context.Background(), &jsonrpc.Notification{Method: "unknown"})
}

func TestHandler_Cancel(t *testing.T) {
	registry := NewRegistry()
	started := make(chan struct{})
	registry.Register("wait", func(ctx context.Context, payload json.RawMessage) (any, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	handler := registry.NewHandler(context.Background(), &mockTransport{}).(*Handler)

	done := make(chan *jsonrpc.Response, 1)
	go func() {
		request := &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 7, Method: "wait"}
		response := &jsonrpc.Response{}
		handler.Serve(context.Background(), request, response)
		done <- response
	}()
	<-started
	handler.OnNotification(context.Background(), &jsonrpc.Notification{
		Method: mcpschema.MethodNotificationCancel,
		Params: []byte(`{"requestId":7}`),
	})
	select {
	case response := <-done:
		require.NotNil(t, response.Error)
		assert.Equal(t, context.Canceled.Error(), response.Error.Message)
	case <-time.After(time.Second):
		t.Fatal("call was not cancelled")
	}
}
