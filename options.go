package hostbridge

import (
	"github.com/viant/hostbridge/auth/provider"
	"github.com/viant/hostbridge/capability"
	"github.com/viant/hostbridge/effect/export"
	"github.com/viant/hostbridge/effect/speech"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	DefaultAddr          = "127.0.0.1:5000"
	DefaultStreamableURI = "/mcp"
)

// Options defines how a Service is assembled.
type Options struct {
	Name string `yaml:"name" json:"name,omitempty"`
	// StorageURL is an afs base URL for durable state; empty keeps state in memory.
	StorageURL string `yaml:"storageURL" json:"storageURL,omitempty"`
	// Namespace prefixes token cache keys.
	Namespace string `yaml:"namespace" json:"namespace,omitempty"`
	// StoragePrefix prefixes keys written through the storage capabilities.
	StoragePrefix string            `yaml:"storagePrefix" json:"storagePrefix,omitempty"`
	Provider      *provider.Config  `yaml:"provider" json:"provider,omitempty"`
	Speech        speech.Config     `yaml:"speech" json:"speech,omitempty"`
	Export        export.Config     `yaml:"export" json:"export,omitempty"`
	Bridge        capability.Config `yaml:"bridge" json:"bridge,omitempty"`
	Transport     *TransportOptions `yaml:"transport" json:"transport,omitempty"`
}

// TransportOptions configures the JSON-RPC endpoint.
type TransportOptions struct {
	Type          string `yaml:"type" json:"type"`
	Addr          string `yaml:"addr" json:"addr,omitempty"`
	StreamableURI string `yaml:"streamableURI" json:"streamableURI,omitempty"`
	Cors          *Cors  `yaml:"cors" json:"cors,omitempty"`
}

// Init sets defaults
func (o *TransportOptions) Init() {
	if o.Type == "" {
		o.Type = TransportStdio
	}
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.StreamableURI == "" {
		o.StreamableURI = DefaultStreamableURI
	}
}
