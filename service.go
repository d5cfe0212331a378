package hostbridge

import (
	"context"
	"encoding/json"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/hostbridge/auth/broker"
	"github.com/viant/hostbridge/auth/cache"
	"github.com/viant/hostbridge/auth/provider"
	"github.com/viant/hostbridge/capability"
	"github.com/viant/hostbridge/effect/clipboard"
	"github.com/viant/hostbridge/effect/export"
	"github.com/viant/hostbridge/effect/kv"
	"github.com/viant/hostbridge/effect/speech"
	"github.com/viant/hostbridge/effect/timer"
	"github.com/viant/hostbridge/schema"
	"github.com/viant/hostbridge/storage"
)

// Service wires the capability registry to the token broker and side effects.
type Service struct {
	options  *Options
	registry *capability.Registry
	store    storage.Store

	client    *provider.Client
	cache     *cache.Cache
	broker    *broker.Broker
	clipboard *clipboard.Reader
	timer     *timer.Timer
	kv        *kv.Service
	speech    *speech.Synthesizer
	exporter  *export.Exporter

	presenter    provider.Presenter
	httpClient   *http.Client
	clipboardRun clipboard.RunFunc
	onReauth     func(ctx context.Context)
	loggers      glog.LoggerProvider
	logger       glog.Logger
}

// namedLogger resolves a component logger, preferring the configured provider.
func (s *Service) namedLogger(name string) glog.Logger {
	loggers, logger := glog.Resolve(name, s.loggers, s.logger)
	if loggers != nil {
		if named := loggers.GetLogger(name); named != nil {
			return glog.Ensure(named)
		}
	}
	return glog.Ensure(logger)
}

// Registry returns the capability registry.
func (s *Service) Registry() *capability.Registry {
	return s.registry
}

// TokenClient returns the identity token client adapter.
func (s *Service) TokenClient() *provider.Client {
	return s.client
}

// Call invokes a capability in-process.
func (s *Service) Call(ctx context.Context, name string, payload json.RawMessage) (json.RawMessage, error) {
	return s.registry.Call(ctx, name, payload)
}

// Close releases the provider redirect endpoint.
func (s *Service) Close() error {
	return s.client.Close()
}

func (s *Service) initialize(ctx context.Context, _ *struct{}) (any, error) {
	if err := s.client.Initialize(ctx); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Service) getToken(ctx context.Context, request *schema.GetTokenRequest) (string, error) {
	outcome := s.broker.Acquire(ctx, broker.Request{ForceRefresh: request.ForceRefresh})
	if err := outcome.Error(); err != nil {
		return "", err
	}
	return outcome.Token, nil
}

func (s *Service) readClipboard(ctx context.Context, _ *struct{}) (string, error) {
	return s.clipboard.Read(ctx), nil
}

func (s *Service) timeout(ctx context.Context, request *schema.TimeoutRequest) (json.RawMessage, error) {
	return s.timer.Wait(ctx, request)
}

func (s *Service) storageSet(ctx context.Context, request *schema.StorageSetRequest) (any, error) {
	s.kv.Set(ctx, request.Key, request.Value)
	return nil, nil
}

func (s *Service) storageGet(ctx context.Context, request *schema.StorageKeyRequest) (json.RawMessage, error) {
	return s.kv.Get(ctx, request.Key), nil
}

func (s *Service) storageRemove(ctx context.Context, request *schema.StorageKeyRequest) (any, error) {
	s.kv.Remove(ctx, request.Key)
	return nil, nil
}

func (s *Service) exportPackage(ctx context.Context, request *schema.ExportPackageRequest) (*schema.ExportPackageResult, error) {
	return s.exporter.Export(ctx, request)
}

func (s *Service) synthesizeSpeech(ctx context.Context, request *schema.SynthesizeSpeechRequest) (string, error) {
	return s.speech.Synthesize(ctx, request)
}

func (s *Service) register() {
	capability.Handle(s.registry, schema.MethodInitialize, s.initialize)
	capability.Handle(s.registry, schema.MethodGetToken, s.getToken)
	capability.Handle(s.registry, schema.MethodReadClipboard, s.readClipboard)
	capability.Handle(s.registry, schema.MethodTimeout, s.timeout)
	capability.Handle(s.registry, schema.MethodStorageSet, s.storageSet)
	capability.Handle(s.registry, schema.MethodStorageGet, s.storageGet)
	capability.Handle(s.registry, schema.MethodStorageRemove, s.storageRemove)
	capability.Handle(s.registry, schema.MethodExportPackage, s.exportPackage)
	capability.Handle(s.registry, schema.MethodSynthesizeSpeech, s.synthesizeSpeech)
}

// New creates a service and registers all capabilities.
func New(options *Options, opts ...Option) (*Service, error) {
	if options == nil {
		options = &Options{}
	}
	if options.Transport == nil {
		options.Transport = &TransportOptions{}
	}
	options.Transport.Init()
	ret := &Service{options: options, logger: glog.Nop()}
	for _, opt := range opts {
		opt(ret)
	}
	logger := ret.namedLogger
	if ret.store == nil {
		ret.store = storage.NewMemoryStore()
		if options.StorageURL != "" {
			ret.store = storage.NewFileStore(options.StorageURL)
		}
	}

	ret.registry = capability.NewRegistry(capability.WithLogger(logger("capability")))
	if err := ret.registry.Install(options.Bridge); err != nil {
		return nil, err
	}

	var providerOptions = []provider.Option{provider.WithLogger(logger("provider"))}
	if ret.presenter != nil {
		providerOptions = append(providerOptions, provider.WithPresenter(ret.presenter))
	}
	if ret.httpClient != nil {
		providerOptions = append(providerOptions, provider.WithHTTPClient(ret.httpClient))
	}
	ret.client = provider.New(options.Provider, providerOptions...)

	var cacheOptions []cache.Option
	if options.Namespace != "" {
		cacheOptions = append(cacheOptions, cache.WithNamespace(options.Namespace))
	}
	ret.cache = cache.New(ret.store, cacheOptions...)

	brokerOptions := []broker.Option{broker.WithLogger(logger("broker"))}
	if ret.onReauth != nil {
		brokerOptions = append(brokerOptions, broker.OnReauthenticationRequired(ret.onReauth))
	}
	ret.broker = broker.New(ret.client, ret.cache, brokerOptions...)

	clipboardOptions := []clipboard.Option{clipboard.WithLogger(logger("clipboard"))}
	if ret.clipboardRun != nil {
		clipboardOptions = append(clipboardOptions, clipboard.WithRunner(ret.clipboardRun))
	}
	ret.clipboard = clipboard.New(clipboardOptions...)
	ret.timer = timer.New()

	kvOptions := []kv.Option{kv.WithLogger(logger("storage"))}
	if options.StoragePrefix != "" {
		kvOptions = append(kvOptions, kv.WithPrefix(options.StoragePrefix))
	}
	ret.kv = kv.New(ret.store, kvOptions...)

	speechOptions := []speech.Option{speech.WithLogger(logger("speech"))}
	if ret.httpClient != nil {
		speechOptions = append(speechOptions, speech.WithHTTPClient(ret.httpClient))
	}
	ret.speech = speech.New(options.Speech, speechOptions...)
	ret.exporter = export.New(options.Export, export.WithLogger(logger("export")))

	ret.register()
	return ret, nil
}
