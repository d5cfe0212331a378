package pending

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const textCodeNotFound = "PENDING_NOT_FOUND"

// Manager coordinates creation and completion of typed pendings.
type Manager[T any] struct {
	Store Store[T]
	now   func() time.Time
}

// NewManager creates a manager backed by store, or by a MemoryStore when store is nil.
func NewManager[T any](store Store[T]) *Manager[T] {
	if store == nil {
		store = NewMemoryStore[T]()
	}
	return &Manager[T]{Store: store, now: time.Now}
}

// Create stores a new pending with a generated ID and returns it.
func (m *Manager[T]) Create(ctx context.Context, spec Spec[T]) (Pending[T], error) {
	now := m.now()
	p := Pending[T]{
		ID:        uuid.NewString(),
		Kind:      spec.Kind,
		CreatedAt: now,
		Data:      spec.Data,
	}
	if spec.TTL > 0 {
		p.ExpiresAt = now.Add(spec.TTL)
	}
	if err := m.Store.Put(ctx, p); err != nil {
		return p, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store pending request")
	}
	return p, nil
}

// Lookup returns a live pending; expired entries are evicted and reported as not found.
func (m *Manager[T]) Lookup(ctx context.Context, id string) (Pending[T], error) {
	p, ok, err := m.Store.Get(ctx, id)
	if err != nil {
		return p, err
	}
	if !ok {
		return p, notFound(id)
	}
	if p.Expired(m.now()) {
		_, _, _ = m.Store.Cancel(ctx, id)
		return p, notFound(id)
	}
	return p, nil
}

// Complete removes and returns the pending entry for the given id.
func (m *Manager[T]) Complete(ctx context.Context, id string) (Pending[T], error) {
	p, ok, err := m.Store.Complete(ctx, id)
	if err != nil {
		return p, err
	}
	if !ok || p.Expired(m.now()) {
		return p, notFound(id)
	}
	return p, nil
}

// Cancel removes and returns the pending entry for the given id without signaling completion.
func (m *Manager[T]) Cancel(ctx context.Context, id string) (Pending[T], error) {
	p, ok, err := m.Store.Cancel(ctx, id)
	if err != nil {
		return p, err
	}
	if !ok {
		return p, notFound(id)
	}
	return p, nil
}

// Sweep cancels expired entries and returns their ids.
func (m *Manager[T]) Sweep(ctx context.Context) ([]string, error) {
	items, err := m.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	now := m.now()
	var ids []string
	for _, p := range items {
		if !p.Expired(now) {
			continue
		}
		if _, ok, _ := m.Store.Cancel(ctx, p.ID); ok {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// IsNotFound reports whether err signals a missing or expired pending.
func IsNotFound(err error) bool {
	var e *goerrors.Error
	return goerrors.As(err, &e) && e.TextCode == textCodeNotFound
}

func notFound(id string) error {
	return goerrors.New("pending request not found", goerrors.CategoryNotFound).
		WithTextCode(textCodeNotFound).
		WithMetadata(map[string]any{"id": id})
}
