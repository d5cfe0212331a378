// Package timer implements the timeout capability: it echoes a caller supplied
// id once a delay has elapsed.
package timer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/viant/hostbridge/schema"
)

// Timer echoes request ids after their delay.
type Timer struct {
	after func(d time.Duration) <-chan time.Time
}

// Wait blocks for the requested duration and returns the request id; it
// returns ctx.Err() when the context ends first.
func (t *Timer) Wait(ctx context.Context, request *schema.TimeoutRequest) (json.RawMessage, error) {
	id := request.ID
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	select {
	case <-t.after(request.Duration()):
		return id, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// New creates a timer.
func New() *Timer {
	return &Timer{after: time.After}
}
