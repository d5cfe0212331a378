// Package clipboard reads the host clipboard as plain text.
package clipboard

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
)

// DefaultTimeout bounds a single clipboard command.
const DefaultTimeout = 2 * time.Second

// RunFunc runs a shell command and returns its output and exit code.
type RunFunc func(ctx context.Context, command string) (string, int, error)

// Reader reads clipboard text by running platform commands. The underlying
// shell is shared, so reads are serialized.
type Reader struct {
	commands []string
	run      RunFunc
	timeout  time.Duration
	once     sync.Once
	mux      sync.Mutex
	logger   glog.Logger
}

// Read returns the clipboard text; any failure yields an empty string.
func (r *Reader) Read(ctx context.Context) string {
	r.once.Do(func() {
		if r.run == nil {
			r.run = r.shell()
		}
	})
	if r.run == nil {
		return ""
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	for _, command := range r.commands {
		output, code, err := r.runCommand(ctx, command)
		if err != nil || code != 0 {
			r.logger.Debug("clipboard command failed", "command", command, "code", code, "error", err)
			continue
		}
		return trimLineBreak(output)
	}
	return ""
}

func (r *Reader) runCommand(ctx context.Context, command string) (string, int, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.run(runCtx, command)
}

func (r *Reader) shell() RunFunc {
	service, err := gosh.New(context.Background(), local.New())
	if err != nil {
		r.logger.Warn("clipboard shell unavailable", "error", err)
		return nil
	}
	return func(ctx context.Context, command string) (string, int, error) {
		return service.Run(ctx, command)
	}
}

// trimLineBreak removes the single line break every command appends.
func trimLineBreak(output string) string {
	if strings.HasSuffix(output, "\r\n") {
		return output[:len(output)-2]
	}
	return strings.TrimSuffix(output, "\n")
}

// Commands returns the clipboard read commands for goos, in preference order.
// Each command terminates its output with a line break so the shell status
// marker that follows lands on its own line.
func Commands(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"pbpaste; echo"}
	case "windows":
		return []string{"powershell -NoProfile -Command Get-Clipboard"}
	default:
		return []string{
			"wl-paste --no-newline; echo",
			"xclip -selection clipboard -o; echo",
			"xsel --clipboard --output; echo",
		}
	}
}

// Option customises a Reader.
type Option func(r *Reader)

// WithRunner replaces the shell runner.
func WithRunner(run RunFunc) Option {
	return func(r *Reader) {
		r.run = run
	}
}

// WithCommands replaces the platform commands.
func WithCommands(commands ...string) Option {
	return func(r *Reader) {
		r.commands = commands
	}
}

// WithTimeout sets the per-command timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Reader) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger glog.Logger) Option {
	return func(r *Reader) {
		r.logger = glog.Ensure(logger)
	}
}

// New creates a clipboard reader for the current platform.
func New(options ...Option) *Reader {
	ret := &Reader{commands: Commands(runtime.GOOS), timeout: DefaultTimeout, logger: glog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
