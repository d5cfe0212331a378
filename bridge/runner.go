package bridge

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/viant/hostbridge"
)

// Run parses args and serves capabilities until the transport stops.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	environment, err := LoadEnvironment()
	if err != nil {
		return err
	}
	options.Merge(environment)

	ctx := context.Background()
	config, err := Config(ctx, options, environment.PromptTimeout)
	if err != nil {
		return err
	}
	logger := NewLogger(nil, options.LogLevel)
	service, err := hostbridge.New(config, hostbridge.WithLogger(logger))
	if err != nil {
		return err
	}
	defer service.Close()

	switch config.Transport.Type {
	case hostbridge.TransportStdio:
		return service.Stdio(ctx).ListenAndServe()
	case hostbridge.TransportHTTP:
		server := service.HTTP(ctx, config.Transport.Addr)
		logger.Info("serving capabilities", "addr", server.Addr, "uri", config.Transport.StreamableURI)
		return server.ListenAndServe()
	default:
		return fmt.Errorf("unsupported transport: %v", config.Transport.Type)
	}
}
