package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/hostbridge/internal/collection"
	"github.com/viant/hostbridge/schema"
)

const (
	TextCodeNotFound         = "CAPABILITY_NOT_FOUND"
	TextCodeFailed           = "CAPABILITY_FAILED"
	TextCodeInvalidPayload   = "INVALID_PAYLOAD"
	TextCodeAlreadyInstalled = "ALREADY_INSTALLED"
)

// HandlerFunc handles one capability invocation.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Config controls bridge-wide error reporting.
type Config struct {
	// LogCallErrors logs every failed capability call.
	LogCallErrors bool `json:"logCallErrors,omitempty"`
	// LogInteropErrors logs protocol errors such as unknown names or malformed requests.
	LogInteropErrors bool `json:"logInteropErrors,omitempty"`
}

type entry struct {
	handler     HandlerFunc
	inputSchema *schema.InputSchema
}

// Registry maps capability names to handlers.
type Registry struct {
	entries   *collection.SyncMap[string, *entry]
	config    atomic.Pointer[Config]
	installed atomic.Bool
	logger    glog.Logger
}

// Install initializes the bridge with config; it may be called once.
func (r *Registry) Install(config Config) error {
	if !r.installed.CompareAndSwap(false, true) {
		return goerrors.New("bridge is already installed", goerrors.CategoryConflict).WithTextCode(TextCodeAlreadyInstalled)
	}
	r.config.Store(&config)
	return nil
}

// Config returns the installed configuration.
func (r *Registry) Config() Config {
	if config := r.config.Load(); config != nil {
		return *config
	}
	return Config{}
}

// Register associates name with handler, replacing any previous handler.
func (r *Registry) Register(name string, handler HandlerFunc) {
	r.register(name, handler, nil)
}

func (r *Registry) register(name string, handler HandlerFunc, inputSchema *schema.InputSchema) {
	if r.entries.Put(name, &entry{handler: handler, inputSchema: inputSchema}) {
		r.logger.Debug("capability replaced", "name", name)
	}
}

// Handle registers a typed handler: the payload is decoded into I (an absent
// or null payload yields the zero I) and the input schema of I is published.
func Handle[I, O any](r *Registry, name string, fn func(ctx context.Context, input *I) (O, error)) {
	handler := func(ctx context.Context, payload json.RawMessage) (any, error) {
		input := new(I)
		if len(payload) > 0 && string(payload) != "null" {
			if err := json.Unmarshal(payload, input); err != nil {
				return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, fmt.Sprintf("invalid payload for %v", name)).
					WithTextCode(TextCodeInvalidPayload)
			}
		}
		return fn(ctx, input)
	}
	r.register(name, handler, schema.NewInputSchema[I]())
}

// Lookup reports whether name is registered.
func (r *Registry) Lookup(name string) bool {
	_, ok := r.entries.Get(name)
	return ok
}

// Capabilities describes registered capabilities ordered by name.
func (r *Registry) Capabilities() []*schema.CapabilityInfo {
	var ret []*schema.CapabilityInfo
	r.entries.Range(func(name string, value *entry) bool {
		ret = append(ret, &schema.CapabilityInfo{Name: name, InputSchema: value.inputSchema})
		return true
	})
	return ret
}

// Call invokes name in-process and returns the JSON encoded result.
func (r *Registry) Call(ctx context.Context, name string, payload json.RawMessage) (json.RawMessage, error) {
	result, err := r.invoke(ctx, name, payload)
	if err != nil {
		r.logCallError(r.logger, name, err)
		return nil, err
	}
	return json.Marshal(result)
}

// invoke runs the handler, converting a panic into a capability failure.
func (r *Registry) invoke(ctx context.Context, name string, payload json.RawMessage) (result any, err error) {
	anEntry, ok := r.entries.Get(name)
	if !ok {
		return nil, goerrors.New(fmt.Sprintf("capability: %v not found", name), goerrors.CategoryNotFound).
			WithTextCode(TextCodeNotFound)
	}
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = goerrors.New(fmt.Sprintf("capability %v failed: %v", name, p), goerrors.CategoryHandler).
				WithTextCode(TextCodeFailed)
		}
	}()
	return anEntry.handler(ctx, payload)
}

func (r *Registry) logCallError(logger glog.Logger, name string, err error) {
	if !r.Config().LogCallErrors {
		return
	}
	logger.Error("capability call failed", "name", name, "error", err)
}

func (r *Registry) logInteropError(logger glog.Logger, method string, err error) {
	if !r.Config().LogInteropErrors {
		return
	}
	logger.Warn("bridge interop error", "method", method, "error", err)
}

// Option customises a Registry.
type Option func(r *Registry)

// WithLogger sets the host-side logger.
func WithLogger(logger glog.Logger) Option {
	return func(r *Registry) {
		r.logger = glog.Ensure(logger)
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...Option) *Registry {
	ret := &Registry{entries: collection.NewSyncMap[string, *entry](), logger: glog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
