// Package kv exposes durable key/value storage to the UI core. Values are
// opaque JSON documents; storage failures are logged and never reported.
package kv

import (
	"context"
	"encoding/json"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/hostbridge/storage"
)

// DefaultPrefix namespaces UI core keys away from host owned entries.
const DefaultPrefix = "hostbridge_storage_"

var null = json.RawMessage("null")

// Service stores UI core values.
type Service struct {
	prefix string
	store  storage.Store
	logger glog.Logger
}

// Set stores value under key.
func (s *Service) Set(ctx context.Context, key string, value json.RawMessage) {
	if len(value) == 0 {
		value = null
	}
	if err := s.store.Put(ctx, key, value); err != nil {
		s.logger.Error("storage set failed", "key", key, "error", err)
	}
}

// Get returns the value stored under key or JSON null when absent.
func (s *Service) Get(ctx context.Context, key string) json.RawMessage {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Error("storage get failed", "key", key, "error", err)
		return null
	}
	if !ok || !json.Valid(data) {
		return null
	}
	return data
}

// Remove deletes key; removing an absent key is a no-op.
func (s *Service) Remove(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Error("storage remove failed", "key", key, "error", err)
	}
}

// Option customises a Service.
type Option func(s *Service)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Service) {
		s.prefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(logger glog.Logger) Option {
	return func(s *Service) {
		s.logger = glog.Ensure(logger)
	}
}

// New creates a key/value service over store.
func New(store storage.Store, options ...Option) *Service {
	ret := &Service{prefix: DefaultPrefix, logger: glog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	ret.store = storage.Prefixed(store, ret.prefix)
	return ret
}
