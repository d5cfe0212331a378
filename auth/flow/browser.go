package flow

import (
	"context"
	"os/exec"
	"runtime"

	glog "github.com/goliatone/go-logger/glog"
)

// Browser opens authorization URLs in the default system browser.
type Browser struct {
	logger glog.Logger
	// commands are tried in order; the first one found on PATH is started.
	commands [][]string
}

// Present starts the browser and returns without waiting for it.
func (b *Browser) Present(ctx context.Context, authURL string) error {
	for _, c := range b.commands {
		if _, err := exec.LookPath(c[0]); err != nil {
			continue
		}
		args := append(append([]string(nil), c[1:]...), authURL)
		cmd := exec.CommandContext(context.WithoutCancel(ctx), c[0], args...)
		if err := cmd.Start(); err != nil {
			b.logger.Warn("failed to start browser", "command", c[0], "error", err)
			continue
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}
	b.logger.Info("open the following URL to authorize", "url", authURL)
	return nil
}

func browserCommands(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"open"}}
	case "windows":
		return [][]string{{"rundll32", "url.dll,FileProtocolHandler"}, {"powershell", "Start-Process"}}
	default:
		return [][]string{{"xdg-open"}, {"wslview"}, {"sensible-browser"}}
	}
}

// NewBrowser creates a browser presenter; when no opener is available the URL is logged.
func NewBrowser(logger glog.Logger) *Browser {
	return &Browser{logger: glog.Ensure(logger), commands: browserCommands(runtime.GOOS)}
}
