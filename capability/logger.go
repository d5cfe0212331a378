package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Logger forwards host log records to the UI core as notifications/message.
// Records are dropped until the core sets a level through logging/setLevel.
type Logger struct {
	name     string
	ctx      context.Context
	level    *atomic.Pointer[schema.LoggingLevel]
	notifier transport.Notifier
}

// Named returns a logger sharing level and notifier under a different name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, ctx: l.ctx, level: l.level, notifier: l.notifier}
}

// SetLevel sets the minimum forwarded level.
func (l *Logger) SetLevel(level schema.LoggingLevel) {
	l.level.Store(&level)
}

func (l *Logger) log(level schema.LoggingLevel, msg string, args ...any) {
	threshold := l.level.Load()
	if threshold == nil || threshold.Ordinal() > level.Ordinal() {
		return
	}
	data := map[string]any{"message": msg}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		value := args[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		data[key] = value
	}
	params := schema.LoggingMessageNotificationParams{Level: level, Logger: &l.name, Data: data}
	notification := &jsonrpc.Notification{Method: schema.MethodNotificationMessage}
	var err error
	if notification.Params, err = json.Marshal(params); err != nil {
		return
	}
	ctx := l.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	_ = l.notifier.Notify(ctx, notification)
}

func (l *Logger) Trace(msg string, args ...any) { l.log(schema.LoggingLevelDebug, msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.log(schema.LoggingLevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(schema.LoggingLevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(schema.LoggingLevelWarning, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(schema.LoggingLevelError, msg, args...) }
func (l *Logger) Fatal(msg string, args ...any) { l.log(schema.LoggingLevelCritical, msg, args...) }

func (l *Logger) WithContext(ctx context.Context) glog.Logger {
	return &Logger{name: l.name, ctx: ctx, level: l.level, notifier: l.notifier}
}

// NewLogger creates a logger; nothing is forwarded until SetLevel is called.
func NewLogger(name string, notifier transport.Notifier) *Logger {
	return &Logger{name: name, level: &atomic.Pointer[schema.LoggingLevel]{}, notifier: notifier}
}
